package machine

import (
	"errors"
	"testing"

	"github.com/retroenv/retrolift/internal/types"
	"github.com/retroenv/retrogolib/assert"
)

func TestInstrClassValidate(t *testing.T) {
	tests := []struct {
		class InstrClass
		valid bool
	}{
		{Linear, true},
		{Transfer | Delay, true},
		{ConditionalTransfer | Delay | Annul, true},
		{Transfer | Call | Delay, true},
		{Linear | Delay, false},
		{Delay, false},
	}

	for _, tt := range tests {
		t.Run(tt.class.String(), func(t *testing.T) {
			err := tt.class.Validate()
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, ErrInvalidClass))
		})
	}
}

func TestInstrClassString(t *testing.T) {
	assert.Equal(t, "None", InstrClass(0).String())
	assert.Equal(t, "Transfer|Conditional|Delay", (ConditionalTransfer | Delay).String())
	assert.Equal(t, "Linear|Zero", (Linear | Zero).String())
}

func TestInstrClassCode(t *testing.T) {
	assert.Equal(t, "L--", Linear.Code())
	assert.Equal(t, "TD-", (Transfer | Delay).Code())
	assert.Equal(t, "CD-", (ConditionalTransfer | Delay).Code())
	assert.Equal(t, "TDA", (Transfer | Call | Delay).Code())
	assert.Equal(t, "---", Invalid.Code())
}

func TestImmediate(t *testing.T) {
	imm := SignedImmediate(types.Int16, -1)
	assert.Equal(t, uint64(0xFFFF), imm.Value)
	assert.Equal(t, int64(-1), imm.Signed())
	assert.Equal(t, "-1", imm.String())

	imm = Immediate(types.Word32, 0x1_0000_0010)
	assert.Equal(t, uint64(0x10), imm.Value)
	assert.Equal(t, "0x10", imm.String())
}

func TestOperandString(t *testing.T) {
	regs := Registers("r%d", 4, GeneralPurpose, types.Word32)
	sr := &Register{Name: "sr1", Number: 1, Kind: SpaceRegister, DataType: types.Word32}

	tests := []struct {
		name     string
		op       Operand
		expected string
	}{
		{"register", RegisterOperand{Register: regs[3]}, "r3"},
		{"memory", MemoryOperand{Type: types.Word32, Base: regs[1], Offset: -4}, "-4(r1)"},
		{"memory no offset", MemoryOperand{Type: types.Word32, Base: regs[1]}, "(r1)"},
		{"memory space", MemoryOperand{Type: types.Word32, Base: regs[2], Offset: 8, Space: sr}, "8(sr1,r2)"},
		{"indexed", IndexedOperand{Type: types.Word32, Base: regs[2], Index: regs[3]}, "r3(r2)"},
		{"indexed space", IndexedOperand{Type: types.Word32, Base: regs[2], Index: regs[3], Space: sr}, "r3(sr1,r2)"},
		{"address", AddressOperand{Address: 0x1000, Type: types.Ptr32}, "00001000"},
		{"left immediate", LeftImmediateOperand{Value: 0x12345800}, "L%0x12345800"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.op.String())
		})
	}
}

func TestAddressAdd(t *testing.T) {
	a := Address(0x1000)
	assert.Equal(t, Address(0x0FFC), a.Add(-4))
	assert.Equal(t, Address(0x1008), a.Add(8))
}
