package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumericText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "3.0345678901234E+13", want: "30345678901234"},
		{in: "3.0345678901234e13", want: "30345678901234"},
		{in: "30345678901234.0", want: "30345678901234"},
		{in: " 901234567.0 ", want: "901234567"},
		{in: "+998 90 123", want: "+998 90 123"},
		{in: "1.5E+0", want: "1.5E+0"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NumericText(tt.in))
		})
	}
}

func TestDocumentSeries(t *testing.T) {
	got, err := DocumentSeries(" aa1234567.0")
	require.NoError(t, err)
	assert.Equal(t, "AA1234567", got)

	got, err = DocumentSeries("ab")
	require.NoError(t, err)
	assert.Equal(t, "AB", got)

	_, err = DocumentSeries("A1234567")
	requireCode(t, err, FieldDocument, CodeDocumentSeries)

	_, err = DocumentSeries("A")
	requireCode(t, err, FieldDocument, CodeDocumentSeries)
}

func TestClientCode(t *testing.T) {
	got, err := ClientCode(" akb 587 ")
	require.NoError(t, err)
	assert.Equal(t, "AKB587", got)

	_, err = ClientCode("   ")
	requireCode(t, err, FieldClientCode, CodeEmpty)
}

func TestRequiredText(t *testing.T) {
	got, err := RequiredText(FieldFullName, "  Aziz Rahimov ")
	require.NoError(t, err)
	assert.Equal(t, "Aziz Rahimov", got)

	_, err = RequiredText(FieldAddress, "nan")
	requireCode(t, err, FieldAddress, CodeEmpty)
}

func TestImportPinflAndPhone(t *testing.T) {
	r := DefaultRules()

	got, err := r.ImportPinfl("3.0345678901234E+13")
	require.NoError(t, err)
	assert.Equal(t, "30345678901234", got)

	phone, err := ImportPhone("901234567.0")
	require.NoError(t, err)
	assert.Equal(t, "+998901234567", phone)
}

func TestImportPhone_RequiresMobileNumber(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
		code Code
	}{
		{"mobile with country code", "998971234567", "+998971234567", ""},
		{"mobile subscriber only", "931234567", "+998931234567", ""},
		{"landline", "998712001122", "", CodePhoneMobile},
		{"landline subscriber only", "712001122", "", CodePhoneMobile},
		{"too short", "12345", "", CodePhoneFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ImportPhone(tt.raw)
			if tt.code != "" {
				requireCode(t, err, FieldPhone, tt.code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
