// Package paths resolves where an application's state files live.
//
// Every application has a resource location made of a base directory and
// the application name. Export and import derive their default file name
// from it, following the `{appName}.{format}` convention.
//
// # Layout
//
//	{base}/
//	  ├── Counter.json
//	  ├── Counter.yaml
//	  └── NotePad.json.zst
//
// # Usage
//
//	import "github.com/GriffinCanCode/miniapp/internal/shared/paths"
//
//	res, err := paths.New("test-data", "Counter")
//	if err != nil {
//	    return err
//	}
//	res.Default("json")        // test-data/Counter.json
//	res.Resolve("backup.json") // test-data/backup.json
//	res.Resolve("/tmp/x.json") // /tmp/x.json
package paths
