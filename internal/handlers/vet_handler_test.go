package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	userdomain "github.com/SerraVetServices/vet-scheduler/internal/domain/user"
	"github.com/SerraVetServices/vet-scheduler/internal/models"
)

func seedVet(t *testing.T, db *gorm.DB, name, email, crmv string) *models.User {
	t.Helper()

	u := seedHandlerUser(t, db, "veterinarian", email)
	u.Name = name
	require.NoError(t, db.Save(u).Error)

	require.NoError(t, db.Create(&models.VetProfile{
		UserID: u.ID,
		CRMV:   crmv,
	}).Error)
	return u
}

func TestListVeterinarians(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db := setupHandlerDB(t)
	ana := seedVet(t, db, "Ana", "ana@serravet.dev", "SP-12345")
	seedVet(t, db, "Bruno", "bruno@serravet.dev", "SP-67890")
	tutor := seedHandlerUser(t, db, "client", "tutor@serravet.dev")

	h := NewVetHandler(db)
	r := gin.New()
	r.GET("/veterinarians", asUser(tutor.ID, userdomain.RoleClient), h.List)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/veterinarians", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []struct {
			ID   uint   `json:"id"`
			Name string `json:"name"`
			CRMV string `json:"crmv"`
		} `json:"data"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// só veterinários, ordenados por nome, com CRMV
	require.Equal(t, 2, resp.Total)
	assert.Equal(t, ana.ID, resp.Data[0].ID)
	assert.Equal(t, "Ana", resp.Data[0].Name)
	assert.Equal(t, "SP-12345", resp.Data[0].CRMV)
	for _, v := range resp.Data {
		assert.NotEqual(t, tutor.ID, v.ID)
	}
}

func TestGetVeterinarian(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db := setupHandlerDB(t)
	ana := seedVet(t, db, "Ana", "ana@serravet.dev", "SP-12345")
	tutor := seedHandlerUser(t, db, "client", "tutor@serravet.dev")

	h := NewVetHandler(db)
	r := gin.New()
	r.GET("/veterinarians/:id", asUser(tutor.ID, userdomain.RoleClient), h.Get)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(
		http.MethodGet, fmt.Sprintf("/veterinarians/%d", ana.ID), nil,
	))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "SP-12345")

	// usuário que não é veterinário não existe no diretório
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(
		http.MethodGet, fmt.Sprintf("/veterinarians/%d", tutor.ID), nil,
	))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
