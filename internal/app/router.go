package app

import (
	"fun2learn_backend/docs"
	"fun2learn_backend/internal/config"
	"fun2learn_backend/internal/middleware"
	"fun2learn_backend/internal/model"
	"fun2learn_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由（无需登录）
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/signup", c.auth.Signup)
		public.POST("/login", c.auth.Login)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/me", c.auth.Me)
		authGroup.PUT("/profile", c.user.UpdateProfile)
		authGroup.POST("/profile/avatar", c.user.UploadAvatar)

		a.registerStudentRoutes(authGroup, c)
		a.registerTutorRoutes(authGroup, c)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	student := rg.Group("/student")
	student.Use(middleware.RoleMiddleware(model.Student))
	{
		student.GET("/browse", c.student.Browse)
		student.POST("/enroll", c.student.Enroll)
		student.GET("/my-courses", c.student.MyCourses)
		student.GET("/course/:course_id", c.student.CourseDetail)
		student.GET("/course/:course_id/lesson/:lesson_id", c.student.Lesson)
		student.POST("/submit-answer", c.student.SubmitAnswer)
		student.POST("/complete-lesson", c.student.CompleteLesson)
		student.GET("/streak", c.student.Streak)
	}
}

func (a *App) registerTutorRoutes(rg *gin.RouterGroup, c *controllers) {
	tutor := rg.Group("/tutor")
	tutor.Use(middleware.RoleMiddleware(model.Tutor))
	{
		tutor.POST("/courses", c.course.CreateCourse)
		tutor.GET("/courses", c.course.ListCourses)
		tutor.GET("/course/:course_id", c.course.GetCourse)
		tutor.PUT("/course", c.course.EditCourse)
		tutor.DELETE("/course/:course_id", c.course.DeleteCourse)
		tutor.POST("/publish-course", c.course.PublishCourse)

		tutor.POST("/units", c.course.AddUnit)
		tutor.PUT("/unit", c.course.EditUnit)
		tutor.DELETE("/unit/:unit_id", c.course.DeleteUnit)

		tutor.POST("/chapters", c.course.AddChapter)
		tutor.PUT("/chapter", c.course.EditChapter)
		tutor.DELETE("/chapter/:chapter_id", c.course.DeleteChapter)

		tutor.POST("/lessons", c.course.AddLesson)
		tutor.PUT("/lesson", c.course.EditLesson)
		tutor.DELETE("/lesson/:lesson_id", c.course.DeleteLesson)
		tutor.GET("/lesson/:lesson_id/questions", c.course.LessonQuestions)

		tutor.POST("/questions/mcq", c.course.AddMCQQuestion)
		tutor.POST("/questions/text", c.course.AddTextQuestion)
		tutor.PUT("/question/mcq", c.course.EditMCQQuestion)
		tutor.PUT("/question/text", c.course.EditTextQuestion)
		tutor.DELETE("/question/:question_id", c.course.DeleteQuestion)

		tutor.POST("/attachments", c.course.UploadAttachment)
		tutor.GET("/lesson/:lesson_id/attachments", c.course.ListAttachments)
		tutor.DELETE("/attachment/:attachment_id", c.course.DeleteAttachment)

		tutor.GET("/tags", c.course.ListTags)
		tutor.GET("/course/:course_id/tags", c.course.CourseTags)
		tutor.POST("/course-tags", c.course.SaveCourseTags)

		tutor.GET("/course/:course_id/badge", c.course.CourseBadge)
		tutor.POST("/badge/icon", c.course.CreateBadgeIcon)
		tutor.POST("/badge/image", c.course.CreateBadgeImage)
	}
}
