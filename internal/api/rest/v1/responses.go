package v1

import (
	"github.com/gin-gonic/gin"
)

// Envelope status values
const (
	statusSuccess = "success"
	statusFail    = "fail"
)

// Response is the envelope wrapping every JSON reply.
type Response struct {
	Status     string      `json:"status"`
	StatusCode int         `json:"status_code"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
}

// AuthResponse extends the envelope with token fields for login and
// refresh replies.
type AuthResponse struct {
	Response
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
}

func respondSuccess(ctx *gin.Context, statusCode int, message string, data interface{}) {
	ctx.JSON(statusCode, Response{
		Status:     statusSuccess,
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
	})
}

func respondFail(ctx *gin.Context, statusCode int, message string) {
	ctx.JSON(statusCode, Response{
		Status:     statusFail,
		StatusCode: statusCode,
		Message:    message,
	})
}

func respondAuth(ctx *gin.Context, statusCode int, message, accessToken, refreshToken string, data interface{}) {
	ctx.JSON(statusCode, AuthResponse{
		Response: Response{
			Status:     statusSuccess,
			StatusCode: statusCode,
			Message:    message,
			Data:       data,
		},
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	})
}
