package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhone_AcceptedFormats(t *testing.T) {
	assert.True(t, Phone("0722123456"))
	assert.True(t, Phone("254722123456"))
	assert.True(t, Phone("0722 123 456"))
	assert.True(t, Phone("254 722 123 456"))
	assert.True(t, Phone("0110123456"))
	assert.True(t, Phone("254110123456"))
}

func TestPhone_RejectedFormats(t *testing.T) {
	assert.False(t, Phone("12345"))
	assert.False(t, Phone("0622123456"), "wrong leading digit class")
	assert.False(t, Phone("07221234567"), "too long")
	assert.False(t, Phone("072212345"), "too short")
	assert.False(t, Phone("+254722123456"), "plus prefix not accepted")
	assert.False(t, Phone(""))
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "0722123456", NormalizePhone("0722 123 456"))
	assert.Equal(t, "254722123456", NormalizePhone(" 254 722123456 "))
}

func TestEmail(t *testing.T) {
	assert.True(t, Email("jane@example.com"))
	assert.True(t, Email("j.doe+tag@mail.co.ke"))
	assert.False(t, Email("jane@example"))
	assert.False(t, Email("jane example@mail.com"))
	assert.False(t, Email("@example.com"))
	assert.False(t, Email(""))
}

func TestAmount_Boundaries(t *testing.T) {
	const maxAmount = 1_000_000

	assert.False(t, Amount(0, maxAmount))
	assert.False(t, Amount(-1, maxAmount))
	assert.True(t, Amount(1, maxAmount))
	assert.True(t, Amount(1_000_000, maxAmount))
	assert.False(t, Amount(1_000_001, maxAmount))
}

func TestName(t *testing.T) {
	assert.True(t, Name("Jo"))
	assert.True(t, Name("  Jane Wanjiku  "))
	assert.False(t, Name("J"))
	assert.False(t, Name("   "))
}

func TestAddress(t *testing.T) {
	assert.True(t, Address("45 Moi Avenue"))
	assert.True(t, Address("12345"))
	assert.False(t, Address("ab c"))
	assert.False(t, Address("    "))
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "scriptalert(1)/script", Sanitize(`<script>alert("1")</script>`))
	assert.Equal(t, "Jane Wanjiku", Sanitize("  Jane Wanjiku  "))
	assert.Equal(t, "Tom Co", Sanitize(`Tom & Co`))
	assert.Equal(t, "OReilly", Sanitize("O'Reilly"))
}

func TestMpesaCode(t *testing.T) {
	assert.True(t, MpesaCode("QWE12345RT"))
	assert.True(t, MpesaCode("qwe12345rt"), "case-insensitive")
	assert.True(t, MpesaCode("ABCD1234"), "8 chars is the floor")
	assert.True(t, MpesaCode("ABCD1234EFGH"), "12 chars is the ceiling")
	assert.False(t, MpesaCode("ABC1234"), "too short")
	assert.False(t, MpesaCode("ABCD1234EFGH5"), "too long")
	assert.False(t, MpesaCode("QWE12345R!"))
	assert.False(t, MpesaCode(""))
}

func TestNormalizeMpesaCode(t *testing.T) {
	assert.Equal(t, "QWE12345RT", NormalizeMpesaCode(" qwe12345rt "))
}

func TestOrderCode(t *testing.T) {
	assert.True(t, OrderCode("SLM123456"))
	assert.True(t, OrderCode("SLM000001"))
	assert.False(t, OrderCode("SLM12345"))
	assert.False(t, OrderCode("SLM1234567"))
	assert.False(t, OrderCode("SL123456"))
	assert.False(t, OrderCode("slm123456"))
}
