package codebuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appendAll(b *Buffer, s string) {
	for i := 0; i < len(s); i++ {
		b.Append(s[i])
	}
}

func TestAppendWithinCapacity(t *testing.T) {
	for k := 0; k <= 4; k++ {
		b := New(4)
		input := "1234"[:k]
		appendAll(b, input)

		assert.Equal(t, k, b.Len())
		assert.Equal(t, k == 4, b.IsFull())

		got, err := b.Drain()
		if k == 0 {
			assert.ErrorIs(t, err, ErrEmpty)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, input, got)
		assert.True(t, b.IsEmpty())
	}
}

func TestAppendOverflowKeepsLastDigits(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		input    string
		want     string
	}{
		{"one over", 4, "12345", "2345"},
		{"double capacity", 4, "12345678", "5678"},
		{"wraps several times", 3, "9876543210", "210"},
		{"capacity one", 1, "123", "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(tt.capacity)
			appendAll(b, tt.input)
			assert.Equal(t, tt.capacity, b.Len())

			got, err := b.Drain()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAppendReportsDiscard(t *testing.T) {
	b := New(2)
	assert.False(t, b.Append('1'))
	assert.False(t, b.Append('2'))
	assert.True(t, b.Append('3'))
}

func TestBackspace(t *testing.T) {
	b := New(4)
	assert.ErrorIs(t, b.Backspace(), ErrEmpty)
	assert.Equal(t, 0, b.Len())

	appendAll(b, "123")
	require.NoError(t, b.Backspace())
	assert.Equal(t, "12", b.String())

	b.Append('9')
	assert.Equal(t, "129", b.String())
}

func TestBackspaceAfterWrap(t *testing.T) {
	b := New(4)
	appendAll(b, "123456")
	require.NoError(t, b.Backspace())
	assert.Equal(t, "345", b.String())

	appendAll(b, "78")
	assert.Equal(t, "4578", b.String())
}

func TestDrainEmptyIsIdempotent(t *testing.T) {
	b := New(4)
	for i := 0; i < 2; i++ {
		got, err := b.Drain()
		assert.ErrorIs(t, err, ErrEmpty)
		assert.Empty(t, got)
	}
}

func TestDrainRoundTrip(t *testing.T) {
	b := New(4)
	appendAll(b, "1234")

	got, err := b.Drain()
	require.NoError(t, err)
	assert.Equal(t, "1234", got)
	assert.Equal(t, 0, b.Len())

	_, err = b.Drain()
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestNewClampsCapacity(t *testing.T) {
	assert.Equal(t, 1, New(0).Cap())
	assert.Equal(t, 1, New(-3).Cap())
}

func TestReset(t *testing.T) {
	b := New(3)
	appendAll(b, "12345")
	b.Reset()
	assert.True(t, b.IsEmpty())
	appendAll(b, "7")
	assert.Equal(t, "7", b.String())
}
