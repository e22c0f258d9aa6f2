package system

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/julianstephens/lumen/internal/cli"
)

type DebugCmd struct {
	Path *DebugPathCmd `cmd:"" help:"Show database path."`
	Keys *DebugKeysCmd `cmd:"" help:"List stored collections."`
	Get  *DebugGetCmd  `cmd:"" help:"Dump a collection as JSON."`
}

type DebugPathCmd struct{}

func (cmd *DebugPathCmd) Run(ctx *cli.Context) error {
	output := map[string]string{
		"path":  ctx.Store.GetConfigPath(),
		"store": ctx.Config.Store,
	}
	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(jsonBytes))
	return nil
}

type DebugKeysCmd struct{}

func (cmd *DebugKeysCmd) Run(ctx *cli.Context) error {
	keys, err := ctx.Store.Keys()
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}
	jsonBytes, err := json.MarshalIndent(keys, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(jsonBytes))
	return nil
}

type DebugGetCmd struct {
	Key string `arg:"" help:"Collection name, e.g. habits or mood-entries."`
}

func (cmd *DebugGetCmd) Run(ctx *cli.Context) error {
	doc, ok, err := ctx.Store.Get(cmd.Key)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", cmd.Key, err)
	}
	if !ok {
		return fmt.Errorf("no collection found for key: %s", cmd.Key)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, doc, "", "  "); err != nil {
		// Corrupt documents are printed as stored
		ctx.Println(string(doc))
		return nil
	}
	ctx.Println(out.String())
	return nil
}
