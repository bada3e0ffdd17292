package utils

import "github.com/gin-gonic/gin"

// Message writes the standard action envelope {"message": ...}.
func Message(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"message": message})
}

// MessageWith writes the action envelope with extra payload fields alongside
// the message.
func MessageWith(ctx *gin.Context, status int, message string, extra gin.H) {
	body := gin.H{"message": message}
	for k, v := range extra {
		body[k] = v
	}
	ctx.JSON(status, body)
}

// FieldErrors writes a 400 with field-level validation messages.
func FieldErrors(ctx *gin.Context, fields gin.H) {
	ctx.JSON(400, fields)
}
