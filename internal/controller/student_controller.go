package controller

import (
	"errors"

	"fun2learn_backend/internal/service"
	"fun2learn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StudentController struct {
	StudentService *service.StudentService
	StreakService  *service.StreakService
	AnswerService  *service.AnswerService
}

func NewStudentController(
	studentService *service.StudentService,
	streakService *service.StreakService,
	answerService *service.AnswerService,
) *StudentController {
	return &StudentController{
		StudentService: studentService,
		StreakService:  streakService,
		AnswerService:  answerService,
	}
}

// Browse godoc
// @Summary 浏览已发布课程
// @Description 返回全部已发布课程的摘要，含统计、标签和徽章
// @Tags 学生
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.BrowseCourseSummary} "成功"
// @Router /api/student/browse [get]
func (c *StudentController) Browse(ctx *gin.Context) {
	courses, err := c.StudentService.BrowseCourses()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"courses": courses})
}

// swagger:model EnrollRequest
type EnrollRequest struct {
	CourseID string `json:"courseId" binding:"required"`
}

// Enroll godoc
// @Summary 报名课程
// @Description 报名已发布课程并初始化进度游标
// @Tags 学生
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body EnrollRequest true "课程ID"
// @Success 201 {object} util.Response{data=object} "报名成功"
// @Failure 400 {object} util.Response "课程未发布"
// @Failure 404 {object} util.Response "课程不存在"
// @Failure 409 {object} util.Response "重复报名"
// @Router /api/student/enroll [post]
func (c *StudentController) Enroll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	enrollment, err := c.StudentService.Enroll(claims.UserID, req.CourseID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx, "Course not found")
		case errors.Is(err, util.ErrCourseNotPublished):
			util.BadRequest(ctx, "Course is not published")
		case errors.Is(err, util.ErrAlreadyEnrolled):
			util.Conflict(ctx, "Already enrolled in this course")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{"enrollmentId": enrollment.ID})
}

// MyCourses godoc
// @Summary 我的课程
// @Description 已报名课程列表与进度摘要，按报名时间倒序
// @Tags 学生
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.EnrolledCourseSummary} "成功"
// @Router /api/student/my-courses [get]
func (c *StudentController) MyCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courses, err := c.StudentService.MyCourses(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"courses": courses})
}

// CourseDetail godoc
// @Summary 课程进度视图
// @Description 完整内容树及每个课时的 completed/current/locked 状态
// @Tags 学生
// @Produce  json
// @Security ApiKeyAuth
// @Param   course_id path string true "课程ID"
// @Success 200 {object} util.Response{data=service.StudentCourseDetail} "成功"
// @Failure 403 {object} util.Response "未报名"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/student/course/{course_id} [get]
func (c *StudentController) CourseDetail(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	detail, err := c.StudentService.GetCourseDetail(claims.UserID, ctx.Param("course_id"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNotEnrolled):
			util.Forbidden(ctx, "Not enrolled in this course")
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx, "Course not found")
		case errors.Is(err, util.ErrNoProgress):
			util.BadRequest(ctx, "No progress record found")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"course": detail})
}

// Lesson godoc
// @Summary 课时答题内容
// @Description 仅已完成或当前课时可访问，题目不携带答案
// @Tags 学生
// @Produce  json
// @Security ApiKeyAuth
// @Param   course_id path string true "课程ID"
// @Param   lesson_id path string true "课时ID"
// @Success 200 {object} util.Response{data=service.StudentLessonDetail} "成功"
// @Failure 400 {object} util.Response "课时不属于该课程"
// @Failure 403 {object} util.Response "课时锁定或未报名"
// @Failure 404 {object} util.Response "课时不存在"
// @Router /api/student/course/{course_id}/lesson/{lesson_id} [get]
func (c *StudentController) Lesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	lesson, err := c.StudentService.GetLesson(claims.UserID, ctx.Param("course_id"), ctx.Param("lesson_id"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNotEnrolled):
			util.Forbidden(ctx, "Not enrolled in this course")
		case errors.Is(err, util.ErrLessonNotFound):
			util.NotFound(ctx, "Lesson not found")
		case errors.Is(err, util.ErrLessonNotInCourse):
			util.BadRequest(ctx, "Lesson does not belong to this course")
		case errors.Is(err, util.ErrLessonLocked):
			util.Forbidden(ctx, "Lesson is locked")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"lesson": lesson})
}

// swagger:model SubmitAnswerRequest
type SubmitAnswerRequest struct {
	QuestionID string `json:"questionId" binding:"required"`
	Answer     string `json:"answer" binding:"required"`
}

// SubmitAnswer godoc
// @Summary 提交答案
// @Description 无状态判题，不影响进度和连胜
// @Tags 学生
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body SubmitAnswerRequest true "题目与作答"
// @Success 200 {object} util.Response{data=service.AnswerResult} "成功"
// @Failure 400 {object} util.Response "选项无效"
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/student/submit-answer [post]
func (c *StudentController) SubmitAnswer(ctx *gin.Context) {
	var req SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AnswerService.CheckAnswer(req.QuestionID, req.Answer)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuestionNotFound):
			util.NotFound(ctx, "Question not found")
		case errors.Is(err, service.ErrInvalidOption):
			util.BadRequest(ctx, "Invalid option selected")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

// swagger:model CompleteLessonRequest
type CompleteLessonRequest struct {
	CourseID string `json:"courseId" binding:"required"`
	LessonID string `json:"lessonId" binding:"required"`
}

// CompleteLesson godoc
// @Summary 完成课时
// @Description 记录完成、推进游标并更新连胜，重复提交幂等
// @Tags 学生
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CompleteLessonRequest true "课程与课时"
// @Success 200 {object} util.Response{data=service.CompleteLessonResult} "成功"
// @Failure 400 {object} util.Response "无进度记录"
// @Failure 403 {object} util.Response "未报名"
// @Router /api/student/complete-lesson [post]
func (c *StudentController) CompleteLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CompleteLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.StudentService.CompleteLesson(claims.UserID, req.CourseID, req.LessonID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNotEnrolled):
			util.Forbidden(ctx, "Not enrolled in this course")
		case errors.Is(err, util.ErrNoProgress):
			util.BadRequest(ctx, "No progress record found")
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx, "Course not found")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

// Streak godoc
// @Summary 连胜状态
// @Description 当前连胜、历史最长、今日是否活跃及近30天日历
// @Tags 学生
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.StreakInfo} "成功"
// @Router /api/student/streak [get]
func (c *StudentController) Streak(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	info, err := c.StreakService.QueryStreak(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, info)
}
