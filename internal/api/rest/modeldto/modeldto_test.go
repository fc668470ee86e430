package modeldto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danilovkiri/dk_go_snapshooter/internal/service/modelshot"
)

func TestRequestPreferences_Patch(t *testing.T) {
	var req RequestPreferences
	require.NoError(t, json.Unmarshal([]byte(`{"defaultFrameStyle":"rounded","defaultFrameColor":"#000000"}`), &req))
	patch := req.Patch()
	assert.False(t, patch.DefaultDeviceType.Set)
	assert.False(t, patch.DefaultBackgroundColor.Set)
	assert.Equal(t, modelshot.Some(modelshot.FrameRounded), patch.DefaultFrameStyle)
	assert.Equal(t, modelshot.Some("#000000"), patch.DefaultFrameColor)
}

func TestLegacyExternalID(t *testing.T) {
	var sync RequestSyncUser
	require.NoError(t, json.Unmarshal([]byte(`{"firebaseUid":"u1","email":"a@b.com"}`), &sync))
	assert.Equal(t, "u1", sync.Profile().ExternalID)

	capture := RequestCapture{ExternalID: "u2", FirebaseUID: "u1"}
	assert.Equal(t, "u2", capture.Owner())
}
