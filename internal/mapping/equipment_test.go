package mapping

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"equipment-ingest/internal/ident"
	"equipment-ingest/internal/model"
)

func str(s string) *string { return &s }

func seq(n uint32) *uint32 { return &n }

func TestIdentityKey_Layout(t *testing.T) {
	d := model.Device{
		Client:      str("Acme"),
		Device:      str("Geiger-9"),
		DeviceModel: str("G9X"),
		Place:       str("Lab1"),
		DeviceNo:    str("SN-1"),
	}

	assert.Equal(t, []byte("AcmeGeiger-9G9XGeiger-9Lab1"), IdentityKey(d))
	assert.Equal(t, ident.Derive([]byte("AcmeGeiger-9G9XGeiger-9Lab1")), EquipmentID(d))
}

func TestIdentityKey_AbsentFieldsAreEmpty(t *testing.T) {
	assert.Empty(t, IdentityKey(model.Device{}))
	assert.Equal(t, uuid.Nil, EquipmentID(model.Device{}))

	d := model.Device{Device: str("X"), Place: str("P")}
	assert.Equal(t, []byte("XXP"), IdentityKey(d))
}

func TestToEquipment_ScenarioNoClient(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	d := model.Device{
		Seq:         seq(1),
		Client:      str("Acme"),
		Device:      str("Geiger-9"),
		DeviceModel: str("G9X"),
		Place:       str("Lab1"),
		Address:     str("123 Main"),
		SampleNo:    str("S-01"),
		DeviceNo:    str("D-77"),
		Vendor:      str("Radiation Inc"),
		Equipment:   str("portable counter"),
		Nuclide:     str("Cs-137"),
	}

	eq := ToEquipment(d, nil, now)

	assert.Equal(t, EquipmentID(d), eq.ID)
	assert.Nil(t, eq.ClientID)
	assert.JSONEq(t, `{"detail":"123 Main"}`, string(eq.Address))
	assert.Equal(t, "G9X", *eq.Model)
	assert.Equal(t, "Geiger-9", *eq.EquipmentName)
	assert.Equal(t, "S-01", *eq.SampleID)
	assert.Equal(t, "D-77", *eq.DeviceNo)
	assert.Equal(t, "Radiation Inc", *eq.Manufacturer)
	assert.Equal(t, "Lab1", *eq.Place)
	assert.Equal(t, "portable counter", *eq.Equipment)
	assert.Nil(t, eq.Comment)
	assert.Nil(t, eq.CreaterID)
	assert.Nil(t, eq.EquipmentTypeID)
	assert.Equal(t, now, eq.CreatedAt)
	assert.Equal(t, eq.CreatedAt, eq.UpdatedAt)
}

func TestToEquipment_AbsentAddress(t *testing.T) {
	eq := ToEquipment(model.Device{Device: str("Geiger-9")}, nil, time.Now())
	assert.JSONEq(t, `{"detail":null}`, string(eq.Address))
	assert.Nil(t, eq.Model)
	assert.Nil(t, eq.Place)
}

func TestToEquipment_ClientAssociation(t *testing.T) {
	clientID := uuid.MustParse("6f1c1d1e-8a4f-4d5b-9a39-1b3f1e2d3c4b")
	eq := ToEquipment(model.Device{Client: str("Acme")}, &clientID, time.Now())
	if assert.NotNil(t, eq.ClientID) {
		assert.Equal(t, clientID, *eq.ClientID)
	}
}

func TestToEquipment_IdentityIgnoresOtherFields(t *testing.T) {
	base := model.Device{
		Client:      str("Acme"),
		Device:      str("Geiger-9"),
		DeviceModel: str("G9X"),
		Place:       str("Lab1"),
	}

	other := base
	other.Seq = seq(99)
	other.SampleNo = str("S-02")
	other.Address = str("elsewhere")
	other.Vendor = str("Another Vendor")
	other.DeviceNo = str("D-78")
	other.Item = str("item")

	assert.Equal(t, ToEquipment(base, nil, time.Now()).ID, ToEquipment(other, nil, time.Now()).ID)

	moved := base
	moved.Place = str("Lab2")
	assert.NotEqual(t, EquipmentID(base), EquipmentID(moved))
}

func TestNewClient(t *testing.T) {
	now := time.Now()
	id := uuid.New()
	c := NewClient(id, "Acme", str("123 Main"), now)

	assert.Equal(t, id, c.ID)
	assert.Equal(t, "Acme", c.Name)
	assert.Empty(t, c.Comment)
	assert.JSONEq(t, `{"detail":"123 Main"}`, string(c.Address))
	assert.Equal(t, now, c.CreatedAt)
	assert.Equal(t, now, c.UpdatedAt)
}
