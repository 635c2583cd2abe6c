// controllers/member.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"readerspace-backend/services"
	"readerspace-backend/utils"
)

// RegisterMemberInput defines the expected JSON structure for registering a member
type RegisterMemberInput struct {
	Name       string `json:"name"`
	FatherName string `json:"father_name"`
	Address    string `json:"address"`
	Email      string `json:"email"`
	Contact    string `json:"contact"`
	SeatNo     string `json:"seatno"`
}

// MemberController handles registration and lookup
type MemberController struct {
	Service *services.MembershipService
}

// RegisterMember creates a member and books the first month's fee
func (mc *MemberController) RegisterMember(c *gin.Context) {
	var input RegisterMemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	entry, err := mc.Service.Register(c.Request.Context(), services.RegisterInput{
		Name:       input.Name,
		FatherName: input.FatherName,
		Address:    input.Address,
		Email:      input.Email,
		Contact:    input.Contact,
		SeatNo:     input.SeatNo,
	})
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// GetMember retrieves a member by library code
func (mc *MemberController) GetMember(c *gin.Context) {
	entry, err := mc.Service.Lookup(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// GetMembers retrieves all members ordered by code
func (mc *MemberController) GetMembers(c *gin.Context) {
	entries, err := mc.Service.List(c.Request.Context())
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}
