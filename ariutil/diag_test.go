package ariutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.amprs.dev/ari/ariutil"
)

func TestDiag(t *testing.T) {
	t.Parallel()

	text, err := ariutil.Diag(uint64(42))
	require.NoError(t, err)
	assert.Equal(t, "42", text)

	text, err = ariutil.Diag("hello")
	require.NoError(t, err)
	assert.Equal(t, `"hello"`, text)
}

func TestDiag_Unsupported(t *testing.T) {
	t.Parallel()

	_, err := ariutil.Diag(func() {})
	require.Error(t, err)
}

func TestDiagBytes(t *testing.T) {
	t.Parallel()

	data, err := ariutil.FromHexString("0x182a")
	require.NoError(t, err)

	text, err := ariutil.DiagBytes(data)
	require.NoError(t, err)
	assert.Equal(t, "42", text)
}

func TestDiagBytes_Malformed(t *testing.T) {
	t.Parallel()

	_, err := ariutil.DiagBytes([]byte{0xff})
	require.Error(t, err)
}

func TestToHexString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0x", ariutil.ToHexString(nil))
	assert.Equal(t, "0xdeadbeef", ariutil.ToHexString([]byte{0xde, 0xad, 0xbe, 0xef}))
}

func TestFromHexString(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		in      string
		want    []byte
		wantErr bool
	}{
		"0x prefix":        {in: "0xdeadbeef", want: []byte{0xde, 0xad, 0xbe, 0xef}},
		"0X prefix":        {in: "0Xdeadbeef", want: []byte{0xde, 0xad, 0xbe, 0xef}},
		"bare":              {in: "deadbeef", want: []byte{0xde, 0xad, 0xbe, 0xef}},
		"empty":             {in: "", want: []byte{}},
		"odd length":        {in: "0xabc", wantErr: true},
		"non-hex character": {in: "0xzz", wantErr: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := ariutil.FromHexString(tc.in)
			if tc.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestHexStringRoundTrip(t *testing.T) {
	t.Parallel()

	data := []byte{0x01, 0x02, 0xff, 0x00, 0xab}

	got, err := ariutil.FromHexString(ariutil.ToHexString(data))
	require.NoError(t, err)
	assert.Equal(t, data, got)
}
