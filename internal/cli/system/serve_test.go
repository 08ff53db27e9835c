package system

import (
	"testing"

	"github.com/julianstephens/habitboard/internal/cli"
	"github.com/julianstephens/habitboard/internal/config"
)

func TestServeOptions(t *testing.T) {
	ctx := &cli.Context{Config: &config.Config{ServerPort: "9000", CORSOrigins: "https://habits.example.com"}}

	opts := (&ServeCmd{}).options(ctx)
	if opts.Port != "9000" || opts.CORSOrigins != "https://habits.example.com" {
		t.Errorf("options() from config = %+v", opts)
	}

	opts = (&ServeCmd{Port: "8081", CORS: "*"}).options(ctx)
	if opts.Port != "8081" || opts.CORSOrigins != "*" {
		t.Errorf("options() from flags = %+v", opts)
	}
}

func TestMigrateCmd(t *testing.T) {
	ctx := newInitializedContext(t)

	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Errorf("MigrateCmd.Run() on an up-to-date database failed: %v", err)
	}
}
