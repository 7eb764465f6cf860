// Package manifest loads the package.json of the SDK repository.
//
// Only the fields the quickstart needs are decoded:
//
//	{
//	  "name": "@alternatefutures/sdk",
//	  "version": "1.4.0",
//	  "description": "Alternate Futures SDK"
//	}
//
// # Usage
//
//	loader := manifest.NewLoader()
//	pkg, err := loader.Load(filepath.Join(sdkRepo, "package.json"))
//	if errors.Is(err, domain.ErrMissingDependencyPath) {
//	    // no manifest, skip the quickstart
//	}
//
// # Error Handling
//
// A missing file yields a *domain.DependencyError. Invalid JSON, or a
// manifest without a name, yields a *domain.ManifestError; both match their
// sentinels with errors.Is.
package manifest
