package model

// Device is a single entry of the input batch. Optional fields are pointers so that
// an absent value can be told apart from an empty one; the mandatory fields are
// pointers too so the loader can reject records that omit them.
type Device struct {
	Seq         *uint32 `json:"seq" validate:"required"`
	FileDate    *string `json:"file_date" validate:"required"`
	FileNo      *string `json:"file_no"`
	Client      *string `json:"client"`
	Address     *string `json:"address"`
	SampleNo    *string `json:"sample_no"`
	Location    *string `json:"location"`
	Nuclide     *string `json:"nuclide"`
	Dose        *string `json:"dose"`
	Device      *string `json:"device"`
	DeviceModel *string `json:"device_model"`
	DeviceNo    *string `json:"device_no"`
	Vendor      *string `json:"vendor"`
	Place       *string `json:"place"`
	Basis       *string `json:"basis"`
	Equipment   *string `json:"equipment"`
	Item        *string `json:"item"`
	TestDate    *string `json:"test_date" validate:"required"`
}

// SeqNo returns the sequence number, or 0 when it was never set.
func (d Device) SeqNo() uint32 {
	if d.Seq == nil {
		return 0
	}
	return *d.Seq
}
