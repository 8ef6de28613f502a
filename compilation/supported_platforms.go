package compilation

import (
	"fmt"

	"github.com/single-pyo3/single-pyo3/compilation/platforms"
	"golang.org/x/exp/slices"
)

// defaultBuilderGenerator is a mapping of platform identifier to generator functions which create a builder with the
// default settings of that platform. Each platform which provides a generator in this mapping is considered a
// supported compilation platform for a CompilationConfig. Items are populated in the init method.
var defaultBuilderGenerator map[string]func() *platforms.CargoBuilder

// init is called once per inclusion of a package. This method is used on startup to populate defaultBuilderGenerator
// and add supported platforms.
func init() {
	// Define a list of default builder generators
	generators := []func() *platforms.CargoBuilder{
		platforms.NewCargoBuilder,
		func() *platforms.CargoBuilder {
			b := platforms.NewCargoBuilder()
			b.Platform, b.Path = "cross", "cross"
			return b
		},
		func() *platforms.CargoBuilder {
			b := platforms.NewCargoBuilder()
			b.Platform, b.Subcommand = "zigbuild", []string{"zigbuild"}
			return b
		},
	}

	// Initialize our builder generator.
	defaultBuilderGenerator = make(map[string]func() *platforms.CargoBuilder)

	// Generate each builder to create a mapping for their platform identifiers.
	for _, generator := range generators {
		platformId := generator().Name()

		// If this platform already exists in our mapping, panic. Each platform should have a unique identifier.
		if _, platformIdExists := defaultBuilderGenerator[platformId]; platformIdExists {
			panic(fmt.Errorf("the compilation platform '%s' is registered with more than one provider", platformId))
		}

		defaultBuilderGenerator[platformId] = generator
	}
}

// GetSupportedCompilationPlatforms obtains a sorted list of the platform identifiers supported by this package.
func GetSupportedCompilationPlatforms() []string {
	platformIds := make([]string, 0, len(defaultBuilderGenerator))
	for k := range defaultBuilderGenerator {
		platformIds = append(platformIds, k)
	}
	slices.Sort(platformIds)
	return platformIds
}

// IsSupportedCompilationPlatform returns a boolean status indicating if a platform identifier is supported within this
// package.
func IsSupportedCompilationPlatform(platform string) bool {
	_, ok := defaultBuilderGenerator[platform]
	return ok
}

// GetDefaultBuilder obtains a builder from the default generator for the provided platform, or nil if the platform
// is unsupported.
func GetDefaultBuilder(platform string) *platforms.CargoBuilder {
	generator, ok := defaultBuilderGenerator[platform]
	if !ok {
		return nil
	}
	return generator()
}
