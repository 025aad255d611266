package handlers

import (
	"github.com/cetprep/mocktest-service/internal/services"
	"github.com/cetprep/mocktest-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	testHandler     *TestHandler
	attemptHandler  *AttemptHandler
	catalogHandler  *CatalogHandler
	questionHandler *QuestionHandler
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	validator *utils.Validator,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		testHandler:     NewTestHandler(serviceManager.Generator(), serviceManager.Runner(), validator, logger),
		attemptHandler:  NewAttemptHandler(serviceManager.Runner(), validator, logger),
		catalogHandler:  NewCatalogHandler(serviceManager.Catalog(), logger),
		questionHandler: NewQuestionHandler(serviceManager.Import(), logger),
	}
}

// SetupRoutes sets up all API routes.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", HealthCheck)

	v1 := router.Group("/api/v1")
	{
		tests := v1.Group("/tests")
		{
			tests.POST("", hm.testHandler.CreateTest)
			tests.POST("/start", hm.testHandler.StartAttempt)
			tests.GET("/:id", hm.testHandler.GetTest)
		}

		attempts := v1.Group("/attempts")
		{
			attempts.GET("/:id/state", hm.attemptHandler.GetState)
			attempts.POST("/:id/response", hm.attemptHandler.SubmitResponse)
			attempts.POST("/:id/submit-section", hm.attemptHandler.SubmitSection)
		}

		subjects := v1.Group("/subjects")
		{
			subjects.GET("", hm.catalogHandler.ListSubjects)
			subjects.GET("/:id/chapters", hm.catalogHandler.ListChapters)
		}

		questions := v1.Group("/questions")
		{
			questions.POST("/import", hm.questionHandler.ImportQuestions)
		}
	}
}
