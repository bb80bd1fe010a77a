// Command ecs-shapegen compiles ECS-style field schema documents into a shape
// model and renders it as Smithy JSON, YAML, OpenAPI components and Go types.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
