package main

import (
	"github.com/gin-gonic/gin"

	"appraiser-auth.backend/internal/interfaces/http/handlers"
)

type routeDeps struct {
	faceHandler          *handlers.FaceHandler
	authorizationHandler *handlers.AuthorizationHandler
	authMiddleware       gin.HandlerFunc
	adminMiddleware      gin.HandlerFunc
	idempotency          gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	admin := []gin.HandlerFunc{d.authMiddleware, d.adminMiddleware}

	face := v1.Group("/face")
	{
		face.POST("/register", d.idempotency, d.faceHandler.Register)
		face.POST("/recognize", d.faceHandler.Recognize)
		face.POST("/info", d.faceHandler.Info)
		face.GET("/appraisers", d.faceHandler.ListAppraisers)
		face.GET("/status", d.faceHandler.Status)
		face.GET("/threshold", d.faceHandler.GetThreshold)
		face.POST("/threshold", append(admin, d.faceHandler.UpdateThreshold)...)
		face.DELETE("/appraisers/:appraiserId/face", append(admin, d.faceHandler.ClearFace)...)
	}

	appraisers := v1.Group("/appraisers")
	{
		appraisers.POST("/verify", d.authorizationHandler.Verify)
		appraisers.GET("/:appraiserId/authorizations", d.authorizationHandler.List)
		appraisers.POST("/:appraiserId/authorizations", append(admin, d.authorizationHandler.Grant)...)
		appraisers.DELETE("/:appraiserId/authorizations", append(admin, d.authorizationHandler.Revoke)...)
		appraisers.POST("/:appraiserId/authorizations/migrate", append(admin, d.authorizationHandler.Migrate)...)
	}

	v1.POST("/authorizations/migrate-legacy", append(admin, d.authorizationHandler.MigrateAll)...)
}
