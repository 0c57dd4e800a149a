// Command schemagen emits a JSON Schema describing the game's wire
// protocol, for client tooling and message validation.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"recess-server/protocol"
)

// messageCatalog groups every wire message so one reflection pass covers
// the whole protocol.
type messageCatalog struct {
	// Server -> client
	Role         protocol.RoleMsg         `json:"role"`
	Lobby        protocol.LobbyMsg        `json:"lobby"`
	Init         protocol.InitMsg         `json:"init"`
	Countdown    protocol.CountdownMsg    `json:"countdown"`
	Start        protocol.StartMsg        `json:"start"`
	State        protocol.StateMsg        `json:"state"`
	Disconnected protocol.DisconnectedMsg `json:"disconnected"`
	// Client -> server
	Client protocol.ClientMessage `json:"client"`
	Input  protocol.InputPayload  `json:"input"`
}

func main() {
	var outPath string
	flag.StringVar(&outPath, "out", "", "path to write the JSON schema")
	flag.Parse()

	if outPath == "" {
		fmt.Fprintln(os.Stderr, "--out is required")
		os.Exit(1)
	}

	schema := buildSchema()

	if err := writeSchema(outPath, schema); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write schema: %v\n", err)
		os.Exit(1)
	}
}

func buildSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}
	schema := reflector.Reflect(new(messageCatalog))
	schema.Title = "Recess Arena Wire Protocol"
	schema.Description = "Messages exchanged between the game server and its clients"
	return schema
}

func writeSchema(outPath string, schema *jsonschema.Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}

	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}

	return nil
}
