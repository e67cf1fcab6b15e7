package person

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/ikos/pkg/ikos"
	"github.com/hashicorp-forge/ikos/pkg/ikos/ikostest"
)

func TestService_Get(t *testing.T) {
	tests := []struct {
		name     string
		personID string
		wantURL  string
	}{
		{name: "by id", personID: "5a1b", wantURL: "/api/user/5a1b"},
		{name: "current user", personID: "", wantURL: "/api/user/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := ikostest.New()
			svc := New(ikostest.NewClient(t, tr))

			_, err := svc.Get(context.Background(), tt.personID, false)
			require.NoError(t, err)

			req := tr.Last()
			assert.Equal(t, http.MethodGet, req.Method)
			assert.Equal(t, tt.wantURL, req.URL)
			assert.Nil(t, req.Params)
			assert.Nil(t, req.Body)
		})
	}
}

func TestService_GetAlwaysResolve(t *testing.T) {
	tr := ikostest.New()
	tr.Response = ikostest.JSON(map[string]any{
		"response": map[string]any{"code": 404, "error": "no such user"},
	})
	svc := New(ikostest.NewClient(t, tr))
	ctx := context.Background()

	_, err := svc.Get(ctx, "missing", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ikos.ErrAPILogic)

	resp, err := svc.Get(ctx, "missing", true)
	require.NoError(t, err)
	meta, err := ikos.DecodeResponseMeta(resp)
	require.NoError(t, err)
	assert.Equal(t, 404, meta.Code)
}

func TestDecodeProfile(t *testing.T) {
	tr := ikostest.New()
	tr.Response = ikostest.JSON(map[string]any{
		"response": map[string]any{"code": 200},
		"data": map[string]any{
			"_id":           "5a1b",
			"WPUserID":      "ada",
			"accountStatus": "ACTIVE",
			"accountType":   "admin",
			"communities":   []any{map[string]any{"_id": "c1", "name": "Research"}},
			"created":       "2014-03-03T10:20:30Z",
			"displayName":   "Ada Lovelace",
			"email":         "ada@example.com",
			"firstName":     "Ada",
			"lastName":      "Lovelace",
			"modified":      "Mar 4, 2014 11:00:00 AM",
		},
	})
	svc := New(ikostest.NewClient(t, tr))

	resp, err := svc.Get(context.Background(), "5a1b", false)
	require.NoError(t, err)
	data, err := ikos.ResolveWithData(resp)
	require.NoError(t, err)

	p, err := DecodeProfile(data)
	require.NoError(t, err)
	assert.Equal(t, "5a1b", p.ID)
	assert.Equal(t, "ada", p.WPUserID)
	assert.Equal(t, "Ada Lovelace", p.DisplayName)
	assert.Equal(t, "ada@example.com", p.Email)
	assert.Len(t, p.Communities, 1)
	assert.Empty(t, p.Phone)

	created, err := p.CreatedAt()
	require.NoError(t, err)
	assert.True(t, created.Equal(time.Date(2014, time.March, 3, 10, 20, 30, 0, time.UTC)))

	modified, err := p.ModifiedAt()
	require.NoError(t, err)
	assert.Equal(t, 2014, modified.Year())
	assert.Equal(t, time.March, modified.Month())
	assert.Equal(t, 4, modified.Day())
	assert.Equal(t, 11, modified.Hour())
}

func TestDecodeProfile_Nil(t *testing.T) {
	_, err := DecodeProfile(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ikos.ErrMissingField)
}

func TestProfile_Timestamps(t *testing.T) {
	p := &Profile{Created: "", Modified: "not a date"}

	created, err := p.CreatedAt()
	require.NoError(t, err)
	assert.True(t, created.IsZero())

	_, err = p.ModifiedAt()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "modified")
}
