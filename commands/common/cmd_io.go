package common

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jfrog/jfrog-client-go/utils/log"
)

// Useful to capture output in tests
var (
	cliOut io.Writer = os.Stdout
	cliIn  io.Reader = os.Stdin
)

func PrettifyJSON(in []byte) []byte {
	var out bytes.Buffer
	if err := json.Indent(&out, in, "", "  "); err != nil {
		return in
	}
	return out.Bytes()
}

func PrintJSON(data []byte) error {
	_, err := cliOut.Write(PrettifyJSON(data))
	return err
}

func PrintValueAsJSON(value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return PrintJSON(data)
}

func printJSONOrLogError(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if _, writeErr := cliOut.Write(PrettifyJSON(data)); writeErr != nil {
		log.Debug(fmt.Sprintf("Write error: %+v", writeErr))
	}
	return nil
}

// ReadJSONInput decodes a JSON value given inline, from the standard input ("-")
// or from a file ("@<file-path>").
func ReadJSONInput(input string, out any) error {
	input = strings.TrimSpace(input)

	if input == "" {
		return errors.New("missing json payload")
	}

	if input == "-" {
		return json.NewDecoder(cliIn).Decode(out)
	}

	if strings.HasPrefix(input, "@") {
		filePath := input[1:]
		if filePath == "" {
			return errors.New("missing file path")
		}
		dataBytes, err := os.ReadFile(filePath)
		if err != nil {
			return err
		}
		return unmarshalJSON(dataBytes, out)
	}

	return unmarshalJSON([]byte(input), out)
}

func unmarshalJSON(dataBytes []byte, out any) error {
	if err := json.Unmarshal(dataBytes, out); err != nil {
		return fmt.Errorf("invalid json payload: %w", err)
	}
	return nil
}

func CloseQuietly(c io.Closer) {
	if err := c.Close(); err != nil {
		log.Debug(fmt.Sprintf("Error closing resource: %+v", err))
	}
}
