package testing

import (
	"os"
	"path"
	"runtime"
)

func init() {
	// cd to the project root when testing, so relative paths (logs dir, db
	// files) resolve the same way as in cmd/server. usage is
	//
	//   in some_test.go,
	//   import (
	//     _ "naftwatch.dz/fuel-monitor-service/pkg/testing"
	//   )

	_, filename, _, _ := runtime.Caller(0)
	dir := path.Join(path.Dir(filename), "..", "..")
	err := os.Chdir(dir)
	if err != nil {
		panic(err)
	}
}
