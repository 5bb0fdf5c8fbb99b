package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingBackend struct {
	getErr, setErr, delErr error
	sets                   int
}

func (f *failingBackend) Get(context.Context, string) (string, bool, error) {
	return "", false, f.getErr
}

func (f *failingBackend) Set(context.Context, string, string) error {
	f.sets++
	return f.setErr
}

func (f *failingBackend) Delete(context.Context, string) error { return f.delErr }
func (f *failingBackend) Clear(context.Context) error          { return f.delErr }

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestLocalStorage_RoundTrip(t *testing.T) {
	s := NewLocalStorage(NewMemoryBackend())

	s.SetItem("k", sample{Name: "maki", Count: 4})

	got, ok := GetItem[sample](s, "k")
	require.True(t, ok)
	assert.Equal(t, sample{Name: "maki", Count: 4}, got)
	assert.True(t, s.HasItem("k"))

	s.RemoveItem("k")
	_, ok = GetItem[sample](s, "k")
	assert.False(t, ok)
	assert.False(t, s.HasItem("k"))
}

func TestLocalStorage_AbsentValues(t *testing.T) {
	backend := NewMemoryBackend()
	s := NewLocalStorage(backend)
	ctx := context.Background()

	tests := []struct {
		name string
		raw  string
		set  bool
	}{
		{name: "missing key"},
		{name: "empty string", raw: "", set: true},
		{name: "json null", raw: "null", set: true},
		{name: "corrupt json", raw: "{not json", set: true},
		{name: "wrong shape", raw: `[1,2,3]`, set: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, backend.Clear(ctx))
			if tt.set {
				require.NoError(t, backend.Set(ctx, "k", tt.raw))
			}
			got, ok := GetItem[sample](s, "k")
			assert.False(t, ok)
			assert.Equal(t, sample{}, got)
		})
	}
}

func TestLocalStorage_ContainsBackendFailures(t *testing.T) {
	backend := &failingBackend{
		getErr: errors.New("lecture impossible"),
		setErr: errors.New("quota dépassé"),
		delErr: errors.New("suppression impossible"),
	}
	s := NewLocalStorage(backend)

	assert.NotPanics(t, func() {
		s.SetItem("k", sample{Name: "x"})
		s.RemoveItem("k")
		s.Clear()
	})
	assert.Equal(t, 1, backend.sets)

	_, ok := GetItem[sample](s, "k")
	assert.False(t, ok)
	assert.False(t, s.HasItem("k"))
}

func TestLocalStorage_UnserializableValue(t *testing.T) {
	backend := NewMemoryBackend()
	s := NewLocalStorage(backend)

	s.SetItem("k", make(chan int))

	assert.False(t, s.HasItem("k"))
}

func TestLocalStorage_Clear(t *testing.T) {
	s := NewLocalStorage(NewMemoryBackend())
	s.SetItem(KeyCart, []int{1})
	s.SetItem(KeyCurrentUser, sample{Name: "a"})

	s.Clear()

	assert.False(t, s.HasItem(KeyCart))
	assert.False(t, s.HasItem(KeyCurrentUser))
}
