package controllers

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterMember(t *testing.T) {
	ts := newTestServer(t, "")

	w := ts.do(http.MethodPost, "/api/members", RegisterMemberInput{
		Name:       " Asha ",
		FatherName: "Ram",
		Contact:    "+911234567890",
		SeatNo:     "A1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decode(t, w)
	assert.Equal(t, "L2025001", body["code"])
	assert.Equal(t, "Asha", body["name"])
	assert.Equal(t, "2025-01-10", body["admission_date"])
	assert.Equal(t, "2025-01-10", body["last_payment"])
	assert.Equal(t, []interface{}{
		map[string]interface{}{"date": "2025-01-10", "amount": float64(500)},
	}, body["payments"])

	assert.Equal(t, []string{
		"+911234567890: Welcome Asha! Your Library Code is L2025001. Admission Date: 2025-01-10. First payment of ₹500 recorded.",
	}, ts.notifier.sent())

	w = ts.do(http.MethodPost, "/api/members", RegisterMemberInput{Name: "Ravi", FatherName: "Mohan", Contact: "9876543210"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "L2025002", decode(t, w)["code"])
}

func TestRegisterMemberValidation(t *testing.T) {
	tests := []struct {
		name    string
		body    interface{}
		wantMsg string
	}{
		{"missing name", RegisterMemberInput{FatherName: "Ram", Contact: "1"}, "name: is required"},
		{"blank father name", RegisterMemberInput{Name: "Asha", FatherName: "  ", Contact: "1"}, "father_name: is required"},
		{"missing contact", RegisterMemberInput{Name: "Asha", FatherName: "Ram"}, "contact: is required"},
		{"malformed json", `{"name": `, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, "")

			w := ts.do(http.MethodPost, "/api/members", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, decode(t, w)["error"])
			}
			assert.Empty(t, ts.notifier.sent())

			list := ts.do(http.MethodGet, "/api/members", nil)
			assert.JSONEq(t, `[]`, list.Body.String())
		})
	}
}

func TestRegisterMemberStorageFailure(t *testing.T) {
	ts := newTestServer(t, filepath.Join(t.TempDir(), "missing", "library_users.json"))

	w := ts.do(http.MethodPost, "/api/members", RegisterMemberInput{Name: "Asha", FatherName: "Ram", Contact: "1"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Could not access member records; the change may not have been saved", decode(t, w)["error"])
	assert.Empty(t, ts.notifier.sent())
}

func TestGetMember(t *testing.T) {
	ts := newTestServer(t, "")
	ts.registerAsha(t)

	w := ts.do(http.MethodGet, "/api/members/L2025001", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "L2025001", body["code"])
	assert.Equal(t, "A1", body["seatno"])

	w = ts.do(http.MethodGet, "/api/members/L9999999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "member L9999999 not found", decode(t, w)["error"])
}

func TestGetMembersOrderedByCode(t *testing.T) {
	ts := newTestServer(t, "")
	ts.registerAsha(t)
	ts.registerAsha(t)

	w := ts.do(http.MethodGet, "/api/members", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var entries []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "L2025001", entries[0]["code"])
	assert.Equal(t, "L2025002", entries[1]["code"])
}
