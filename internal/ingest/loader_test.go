package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBatch = `[
  {
    "seq": 1,
    "file_date": "2021-03-04",
    "file_no": "F-1",
    "client": "Acme",
    "address": "123 Main",
    "sample_no": "S-01",
    "location": "north wing",
    "nuclide": "Cs-137",
    "dose": "0.2",
    "device": "Geiger-9",
    "device_model": "G9X",
    "device_no": "D-77",
    "vendor": "Radiation Inc",
    "place": "Lab1",
    "basis": "GB 18871",
    "equipment": "portable counter",
    "item": "annual check",
    "test_date": "2021-03-05"
  },
  {
    "seq": 2,
    "file_date": "2021-03-04",
    "client": null,
    "test_date": "2021-03-06"
  }
]`

func TestLoadDevices(t *testing.T) {
	path := filepath.Join(t.TempDir(), "devices.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleBatch), 0o600))

	devices, err := LoadDevices(path)
	require.NoError(t, err)
	require.Len(t, devices, 2)

	first := devices[0]
	assert.Equal(t, uint32(1), first.SeqNo())
	assert.Equal(t, "Acme", *first.Client)
	assert.Equal(t, "Geiger-9", *first.Device)
	assert.Equal(t, "G9X", *first.DeviceModel)
	assert.Equal(t, "Lab1", *first.Place)
	assert.Equal(t, "Cs-137", *first.Nuclide)
	assert.Equal(t, "2021-03-05", *first.TestDate)

	second := devices[1]
	assert.Equal(t, uint32(2), second.SeqNo())
	assert.Nil(t, second.Client)
	assert.Nil(t, second.Address)
	assert.Nil(t, second.Device)
}

func TestLoadDevices_MissingFile(t *testing.T) {
	_, err := LoadDevices(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorContains(t, err, "failed to open input")
}

func TestDecodeDevices_Errors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "Malformed JSON", input: `[{"seq": 1,`, want: "failed to decode input"},
		{name: "Not an array", input: `{"seq": 1}`, want: "failed to decode input"},
		{name: "Trailing data", input: `[] []`, want: "trailing data"},
		{name: "Missing seq", input: `[{"file_date": "a", "test_date": "b"}]`, want: "index 0"},
		{name: "Null test_date", input: `[{"seq": 1, "file_date": "a", "test_date": null}]`, want: "TestDate"},
		{name: "Negative seq", input: `[{"seq": -1, "file_date": "a", "test_date": "b"}]`, want: "failed to decode input"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeDevices(strings.NewReader(tc.input))
			assert.ErrorContains(t, err, tc.want)
		})
	}
}

func TestDecodeDevices_EmptyValuesAreAccepted(t *testing.T) {
	devices, err := DecodeDevices(strings.NewReader(`[{"seq": 0, "file_date": "", "test_date": ""}]`))
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, uint32(0), devices[0].SeqNo())
}
