package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMutation(t *testing.T) {
	tests := map[string]struct {
		raw  string
		ok   bool
		want string
	}{
		"plain text":        {raw: "Order Updated Successfully", ok: true, want: "Order Updated Successfully"},
		"lower case":        {raw: "updated successfully", ok: true, want: "updated successfully"},
		"json object":       {raw: `{"message":"Inserted Successfully"}`, ok: true, want: "Inserted Successfully"},
		"json string":       {raw: `"Success"`, ok: true, want: "Success"},
		"asmx xml envelope": {raw: `<?xml version="1.0" encoding="utf-8"?><string xmlns="http://tempuri.org/">Updated Successfully</string>`, ok: true, want: "Updated Successfully"},
		"failure text":      {raw: "Invalid token", ok: false, want: "Invalid token"},
		"unsuccessful":      {raw: "Update Unsuccessful", ok: false, want: "Update Unsuccessful"},
		"unsuccessful json": {raw: `{"message":"Order update unsuccessful"}`, ok: false, want: "Order update unsuccessful"},
		"unsuccessfully":    {raw: "Unsuccessfully Updated", ok: false, want: "Unsuccessfully Updated"},
		"empty":             {raw: "", ok: false, want: ""},
		"whitespace":        {raw: "   \n", ok: false, want: ""},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			res := parseMutation([]byte(tc.raw))
			assert.Equal(t, tc.ok, res.OK)
			assert.Equal(t, tc.want, res.Message)
		})
	}
}

func TestParseLeadAssignment(t *testing.T) {
	tests := map[string]struct {
		raw string
		ok  bool
	}{
		"object":           {raw: `{"message":"Leads Assigned Successfully"}`, ok: true},
		"bare string":      {raw: "Leads Assigned Successfully", ok: true},
		"quoted string":    {raw: `"Leads Assigned Successfully"`, ok: true},
		"xml wrapped":      {raw: `<string xmlns="http://tempuri.org/">{"message":"Leads Assigned Successfully"}</string>`, ok: true},
		"other success":    {raw: `{"message":"Order Updated Successfully"}`, ok: false},
		"no vendors":       {raw: `{"message":"No vendors available"}`, ok: false},
		"empty":            {raw: ``, ok: false},
		"object no fields": {raw: `{}`, ok: false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.ok, parseLeadAssignment([]byte(tc.raw)).OK)
		})
	}
}

func TestDecodeRecordsToleratesLooseTypes(t *testing.T) {
	raw := `<string xmlns="http://tempuri.org/">[
		{"ID": 7, "OrderID": "O1", "UserID": "9876543210", "ItemName": "Haircut", "Price": "100", "DiscountPrice": "", "Quantity": "2", "Status": "Pending"},
		{"ID": "8", "OrderID": "O1", "ItemName": "Beard trim", "Price": 49.5, "DiscountPrice": 40, "Quantity": 1.0, "Status": "Pending", "VendorPhone": null}
	]</string>`

	records, err := decodeRecords([]byte(raw))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "7", records[0].ID)
	assert.Equal(t, 2, records[0].Quantity)
	assert.True(t, records[0].Price.Equal(decimal.NewFromInt(100)))
	assert.True(t, records[0].DiscountPrice.IsZero())
	assert.Equal(t, StatusPending, records[0].Status)

	assert.Equal(t, "8", records[1].ID)
	assert.Equal(t, 1, records[1].Quantity)
	assert.True(t, records[1].Price.Equal(decimal.RequireFromString("49.5")))
	assert.Empty(t, records[1].VendorPhone)
}

func TestDecodeRecordsEnvelopes(t *testing.T) {
	records, err := decodeRecords([]byte(`{"d":[{"OrderID":"O2","Status":"Done"}]}`))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, StatusDone, records[0].Status)

	records, err = decodeRecords([]byte(""))
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = decodeRecords([]byte("Invalid token"))
	assert.ErrorIs(t, err, ErrDecode)
}

func TestDecodeVendors(t *testing.T) {
	vendors, err := decodeVendors([]byte(`[{"Fullname":"Asha","PhoneNumber":9123456780,"Address":"MG Road"}]`))
	require.NoError(t, err)
	require.Len(t, vendors, 1)
	assert.Equal(t, Vendor{Fullname: "Asha", PhoneNumber: "9123456780", Address: "MG Road"}, vendors[0])
}
