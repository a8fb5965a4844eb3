package system

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/julianstephens/focusflow/internal/cli"
	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/storage"
)

type DebugCmd struct {
	DBPath *DebugDBPathCmd `cmd:"" help:"Show database path."`
	Keys   *DebugKeysCmd   `cmd:"" help:"List stored document keys."`
	Dump   *DebugDumpCmd   `cmd:"" help:"Dump a stored document as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	// Output in machine-readable format
	output := map[string]string{
		"path":   ctx.Store.GetConfigPath(),
		"config": ctx.Dir,
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}

type DebugKeysCmd struct{}

func (cmd *DebugKeysCmd) Run(ctx *cli.Context) error {
	keys, err := ctx.Store.List(constants.KeyPrefix)
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}
	for _, k := range keys {
		fmt.Println(k)
	}
	return nil
}

type DebugDumpCmd struct {
	Key string `arg:"" help:"Document key, with or without the focusflow_ prefix and _v1 suffix (e.g. logs)."`
}

func (cmd *DebugDumpCmd) Run(ctx *cli.Context) error {
	key := normalizeKey(cmd.Key)
	raw, ok, err := ctx.Store.Get(key)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok {
		return fmt.Errorf("%s: %w", key, storage.ErrNotFound)
	}

	var doc interface{}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		// Not JSON; print as stored
		fmt.Println(raw)
		return nil
	}
	jsonBytes, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}

// normalizeKey expands short names such as "logs" to "focusflow_logs_v1".
func normalizeKey(key string) string {
	if strings.HasPrefix(key, constants.KeyPrefix) {
		return key
	}
	if !strings.HasSuffix(key, "_v1") {
		key += "_v1"
	}
	return constants.KeyPrefix + key
}
