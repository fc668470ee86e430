package modelshot

import (
	"errors"
	"testing"

	serviceErrors "github.com/danilovkiri/dk_go_snapshooter/internal/service/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests

func TestTitle(t *testing.T) {
	tests := []struct {
		name string
		URL  string
		want string
	}{
		{name: "leading www stripped", URL: "https://www.example.com/path", want: "example.com"},
		{name: "no www", URL: "https://test.dev", want: "test.dev"},
		{name: "inner www kept", URL: "http://docs.www.example.org", want: "docs.www.example.org"},
		{name: "port dropped", URL: "http://www.localhost:8080/x?y=1", want: "localhost"},
		{name: "uppercase host lowered", URL: "https://WWW.Example.COM/path", want: "example.com"},
		{name: "mixed case after www", URL: "https://www.EXAMPLE.com", want: "example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Title(tt.URL)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTitle_Fail(t *testing.T) {
	_, err := Title("example.com")
	assert.Error(t, err)
}

func TestCaptureRequest_Validate(t *testing.T) {
	valid := CaptureRequest{
		URL:             "https://test.dev",
		DeviceType:      DeviceDesktop,
		BackgroundColor: "linear-gradient(#000, #fff)",
		FrameStyle:      FrameRounded,
		FrameColor:      "#111",
	}
	assert.NoError(t, valid.Validate())

	invalid := CaptureRequest{URL: "not a url", DeviceType: "tablet", FrameStyle: "square"}
	err := invalid.Validate()
	var verr *serviceErrors.ValidationError
	require.True(t, errors.As(err, &verr))
	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.Equal(t, []string{"url", "deviceType", "frameStyle"}, fields)
}

func TestCaptureRequest_ValidateEmptyURL(t *testing.T) {
	err := CaptureRequest{DeviceType: DeviceMobile, FrameStyle: FrameFramed}.Validate()
	var verr *serviceErrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []serviceErrors.FieldError{{Field: "url", Reason: "Required"}}, verr.Fields)
}

func TestProfile_Validate(t *testing.T) {
	assert.NoError(t, Profile{ExternalID: "u1", Email: "a@b.com"}.Validate())
	assert.Error(t, Profile{ExternalID: "", Email: "a@b.com"}.Validate())
	assert.Error(t, Profile{ExternalID: AnonymousExternalID, Email: "a@b.com"}.Validate())
	assert.Error(t, Profile{ExternalID: "u1"}.Validate())
}

func TestPreferencesPatch(t *testing.T) {
	prior := Preferences{
		UserID:                 2,
		DefaultDeviceType:      DeviceMobile,
		DefaultBackgroundColor: SeedBackgroundColor,
		DefaultFrameStyle:      FrameFramed,
		DefaultFrameColor:      SeedFrameColor,
	}
	patch := PreferencesPatch{DefaultFrameStyle: Some(FrameRounded)}
	assert.NoError(t, patch.Validate())
	assert.False(t, patch.Empty())
	got := patch.Apply(prior)
	want := prior
	want.DefaultFrameStyle = FrameRounded
	assert.Equal(t, want, got)

	assert.True(t, PreferencesPatch{}.Empty())
	assert.Error(t, PreferencesPatch{DefaultDeviceType: Some(DeviceType("watch"))}.Validate())
}

func TestUserPatch_ClearsNullable(t *testing.T) {
	name := "Ann"
	user := User{Email: "a@b.com", DisplayName: &name}
	got := UserPatch{Email: Some("c@d.com"), DisplayName: Some[*string](nil)}.Apply(user)
	assert.Equal(t, "c@d.com", got.Email)
	assert.Nil(t, got.DisplayName)
}

// Benchmarks

func BenchmarkCaptureRequest_Validate(b *testing.B) {
	req := CaptureRequest{URL: "https://www.example.com", DeviceType: DeviceMobile, FrameStyle: FrameFramed}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = req.Validate()
	}
}
