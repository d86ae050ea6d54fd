package ingest

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"

	"equipment-ingest/internal/model"
)

// LoadDevices reads the JSON array of devices at path. Any failure here is fatal to
// the run: nothing has touched the store yet.
func LoadDevices(path string) ([]model.Device, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input %s: %w", path, err)
	}
	defer f.Close()

	return DecodeDevices(bufio.NewReader(f))
}

// DecodeDevices decodes and validates a JSON array of devices.
func DecodeDevices(r io.Reader) ([]model.Device, error) {
	dec := json.NewDecoder(r)

	var devices []model.Device
	if err := dec.Decode(&devices); err != nil {
		return nil, fmt.Errorf("failed to decode input: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("failed to decode input: trailing data after device array")
	}

	validate := validator.New()
	for i := range devices {
		if err := validate.Struct(devices[i]); err != nil {
			return nil, fmt.Errorf("invalid device at index %d: %w", i, err)
		}
	}
	return devices, nil
}
