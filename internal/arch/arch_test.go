package arch

import (
	"errors"
	"testing"

	"github.com/retroenv/retrolift/internal/host"
	"github.com/retroenv/retrolift/internal/testgen"
	"github.com/retroenv/retrogolib/assert"
)

func TestServicesWithDefaults(t *testing.T) {
	s := Services{}.WithDefaults()
	assert.NotNil(t, s.Binder)
	assert.Equal(t, host.Host(host.Discard{}), s.Host)
	assert.Equal(t, testgen.Service(testgen.Nop{}), s.TestGen)

	rec := host.NewRecorder()
	s = Services{Host: rec}.WithDefaults()
	assert.True(t, s.Host == host.Host(rec))
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	var created Options
	r.Register("MIPS", func(opts Options) Architecture {
		created = opts
		return nil
	})
	r.Register("chip8", func(Options) Architecture { return nil })

	assert.Equal(t, []string{"chip8", "mips"}, r.Names())

	_, err := r.New("Mips", Options{BigEndian: true})
	assert.NoError(t, err)
	assert.True(t, created.BigEndian)

	_, err = r.New("z80", Options{})
	assert.True(t, errors.Is(err, ErrUnknownArchitecture))
	assert.ErrorContains(t, err, "supported: chip8, mips")
}
