// Regenerates the embedded config schema. Run via go:generate from the
// config package.
package main

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/easeltools/easel/cli"
	"github.com/easeltools/easel/config"
)

func main() {
	logger := cli.NewLogger(cli.WithLevel(logrus.InfoLevel))

	schemaBytes, err := config.GenerateSchema()
	if err != nil {
		logger.Fatalf("generate schema: %v", err)
	}

	// go:generate runs with the config package as working directory; fall
	// back to the repo-root layout when invoked by hand.
	outputPath := "easel.embedded.schema.json"
	if _, err := os.Stat("config"); err == nil {
		outputPath = filepath.Join("config", "easel.embedded.schema.json")
	}

	if err := os.WriteFile(outputPath, schemaBytes, 0644); err != nil {
		logger.Fatalf("write schema file: %v", err)
	}

	logger.Infof("wrote %s", outputPath)
}
