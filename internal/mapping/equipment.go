// Package mapping turns input devices into the rows persisted by the store.
package mapping

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"equipment-ingest/internal/ident"
	"equipment-ingest/internal/model"
)

// addressPayload is the structured form of a free-text address.
type addressPayload struct {
	Detail *string `json:"detail"`
}

// IdentityKey returns the bytes an equipment identifier is derived from:
// client, device, device model, device, place. The device name is folded in twice;
// rows written by earlier imports depend on this exact layout, so it must not change.
func IdentityKey(d model.Device) []byte {
	client := deref(d.Client)
	dev := deref(d.Device)
	devModel := deref(d.DeviceModel)
	place := deref(d.Place)

	key := make([]byte, 0, len(client)+2*len(dev)+len(devModel)+len(place))
	key = append(key, client...)
	key = append(key, dev...)
	key = append(key, devModel...)
	key = append(key, dev...)
	key = append(key, place...)
	return key
}

// EquipmentID derives the deterministic identifier of a device.
func EquipmentID(d model.Device) uuid.UUID {
	return ident.Derive(IdentityKey(d))
}

// AddressPayload wraps a raw address as {"detail": addr}; a nil address becomes {"detail": null}.
func AddressPayload(addr *string) datatypes.JSON {
	// Marshalling a struct of one *string cannot fail.
	b, _ := json.Marshal(addressPayload{Detail: addr})
	return datatypes.JSON(b)
}

// ToEquipment maps a device and its resolved client onto an Equipment row.
// Comment, creator and equipment type are left unset.
func ToEquipment(d model.Device, clientID *uuid.UUID, now time.Time) model.Equipment {
	return model.Equipment{
		ID:            EquipmentID(d),
		Model:         d.DeviceModel,
		EquipmentName: d.Device,
		SampleID:      d.SampleNo,
		DeviceNo:      d.DeviceNo,
		Manufacturer:  d.Vendor,
		Place:         d.Place,
		Equipment:     d.Equipment,
		ClientID:      clientID,
		Address:       AddressPayload(d.Address),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// NewClient builds the row inserted when a device names a client the store does not know yet.
func NewClient(id uuid.UUID, name string, address *string, now time.Time) model.Client {
	return model.Client{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
		Name:      name,
		Address:   AddressPayload(address),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
