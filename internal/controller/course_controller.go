package controller

import (
	"errors"

	"fun2learn_backend/internal/service"
	"fun2learn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService     *service.CourseService
	TagService        *service.TagService
	BadgeService      *service.BadgeService
	AttachmentService *service.AttachmentService
}

func NewCourseController(
	courseService *service.CourseService,
	tagService *service.TagService,
	badgeService *service.BadgeService,
	attachmentService *service.AttachmentService,
) *CourseController {
	return &CourseController{
		CourseService:     courseService,
		TagService:        tagService,
		BadgeService:      badgeService,
		AttachmentService: attachmentService,
	}
}

// respondAuthoringError 创作接口的统一错误映射
func respondAuthoringError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCourseNotFound):
		util.NotFound(ctx, "Course not found")
	case errors.Is(err, util.ErrLessonNotFound):
		util.NotFound(ctx, "Lesson not found")
	case errors.Is(err, util.ErrQuestionNotFound):
		util.NotFound(ctx, "Question not found")
	case errors.Is(err, util.ErrAttachmentNotFound):
		util.NotFound(ctx, "Attachment not found")
	case errors.Is(err, util.ErrTagNotFound):
		util.NotFound(ctx, "Tag not found")
	case errors.Is(err, util.ErrNotCourseOwner):
		util.Forbidden(ctx, "Not the owner of this course")
	case errors.Is(err, util.ErrCourseAlreadyPublished):
		util.BadRequest(ctx, "Course is already published")
	case errors.Is(err, util.ErrCourseHasNoLessons):
		util.BadRequest(ctx, "Course must contain at least one lesson before publishing")
	case errors.Is(err, util.ErrInvalidFileType):
		util.BadRequest(ctx, "Invalid file type")
	default:
		util.LogInternalError(ctx, err)
	}
}

// swagger:model CreateCourseRequest
type CreateCourseRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// CreateCourse godoc
// @Summary 创建课程
// @Tags 课程创作
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CreateCourseRequest true "课程信息"
// @Success 201 {object} util.Response{data=model.Course} "创建成功"
// @Router /api/tutor/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.CreateCourse(claims.UserID, req.Name, req.Description)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// ListCourses godoc
// @Summary 我创建的课程列表
// @Tags 课程创作
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Course} "成功"
// @Router /api/tutor/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courses, err := c.CourseService.ListCourses(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"courses": courses})
}

// GetCourse godoc
// @Summary 课程详情（导师视角）
// @Tags 课程创作
// @Produce  json
// @Security ApiKeyAuth
// @Param   course_id path string true "课程ID"
// @Success 200 {object} util.Response{data=model.Course} "成功"
// @Failure 403 {object} util.Response "非课程所有者"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/tutor/course/{course_id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	course, err := c.CourseService.GetCourse(claims.UserID, ctx.Param("course_id"))
	if err != nil {
		respondAuthoringError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"course": course})
}

// swagger:model EditCourseRequest
type EditCourseRequest struct {
	CourseID    string `json:"courseId" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// EditCourse godoc
// @Summary 编辑课程
// @Tags 课程创作
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body EditCourseRequest true "课程信息"
// @Success 200 {object} util.Response{data=model.Course} "成功"
// @Router /api/tutor/course [put]
func (c *CourseController) EditCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req EditCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.UpdateCourse(claims.UserID, req.CourseID, req.Name, req.Description)
	if err != nil {
		respondAuthoringError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// DeleteCourse godoc
// @Summary 删除课程
// @Tags 课程创作
// @Produce  json
// @Security ApiKeyAuth
// @Param   course_id path string true "课程ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/tutor/course/{course_id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.CourseService.DeleteCourse(claims.UserID, ctx.Param("course_id")); err != nil {
		respondAuthoringError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// swagger:model PublishCourseRequest
type PublishCourseRequest struct {
	CourseID string `json:"courseId" binding:"required"`
}

// PublishCourse godoc
// @Summary 发布课程
// @Description 课程至少包含一个课时才能发布，发布后学生可见
// @Tags 课程创作
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body PublishCourseRequest true "课程ID"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "课程无课时或已发布"
// @Router /api/tutor/publish-course [post]
func (c *CourseController) PublishCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req PublishCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.CourseService.Publish(claims.UserID, req.CourseID); err != nil {
		respondAuthoringError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"courseId": req.CourseID})
}

// swagger:model AddUnitRequest
type AddUnitRequest struct {
	CourseID    string `json:"courseId" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	UnitIndex   int    `json:"unitIndex" binding:"min=0"`
}

// AddUnit godoc
// @Summary 添加单元
// @Tags 课程创作
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body AddUnitRequest true "单元信息"
// @Success 201 {object} util.Response{data=model.Unit} "创建成功"
// @Router /api/tutor/units [post]
func (c *CourseController) AddUnit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AddUnitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	unit, err := c.CourseService.AddUnit(claims.UserID, req.CourseID, req.Name, req.Description, req.UnitIndex)
	if err != nil {
		respondAuthoringError(ctx, err)
		return
	}
	util.Created(ctx, unit)
}

// swagger:model EditUnitRequest
type EditUnitRequest struct {
	UnitID      string `json:"unitId" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	UnitIndex   int    `json:"unitIndex" binding:"min=0"`
}

// EditUnit godoc
// @Summary 编辑单元
// @Tags 课程创作
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body EditUnitRequest true "单元信息"
// @Success 200 {object} util.Response{data=model.Unit} "成功"
// @Router /api/tutor/unit [put]
func (c *CourseController) EditUnit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req EditUnitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	unit, err := c.CourseService.EditUnit(claims.UserID, req.UnitID, req.Name, req.Description, req.UnitIndex)
	if err != nil {
		respondAuthoringError(ctx, err)
		return
	}
	util.Success(ctx, unit)
}

// DeleteUnit godoc
// @Summary 删除单元
// @Tags 课程创作
// @Produce  json
// @Security ApiKeyAuth
// @Param   unit_id path string true "单元ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/tutor/unit/{unit_id} [delete]
func (c *CourseController) DeleteUnit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.CourseService.DeleteUnit(claims.UserID, ctx.Param("unit_id")); err != nil {
		respondAuthoringError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// swagger:model AddChapterRequest
type AddChapterRequest struct {
	UnitID       string `json:"unitId" binding:"required"`
	Name         string `json:"name" binding:"required"`
	ChapterIndex int    `json:"chapterIndex" binding:"min=0"`
}

// AddChapter godoc
// @Summary 添加章节
// @Tags 课程创作
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body AddChapterRequest true "章节信息"
// @Success 201 {object} util.Response{data=model.Chapter} "创建成功"
// @Router /api/tutor/chapters [post]
func (c *CourseController) AddChapter(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AddChapterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	chapter, err := c.CourseService.AddChapter(claims.UserID, req.UnitID, req.Name, req.ChapterIndex)
	if err != nil {
		respondAuthoringError(ctx, err)
		return
	}
	util.Created(ctx, chapter)
}

// swagger:model EditChapterRequest
type EditChapterRequest struct {
	ChapterID    string `json:"chapterId" binding:"required"`
	Name         string `json:"name" binding:"required"`
	ChapterIndex int    `json:"chapterIndex" binding:"min=0"`
}

// EditChapter godoc
// @Summary 编辑章节
// @Tags 课程创作
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body EditChapterRequest true "章节信息"
// @Success 200 {object} util.Response{data=model.Chapter} "成功"
// @Router /api/tutor/chapter [put]
func (c *CourseController) EditChapter(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req EditChapterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	chapter, err := c.CourseService.EditChapter(claims.UserID, req.ChapterID, req.Name, req.ChapterIndex)
	if err != nil {
		respondAuthoringError(ctx, err)
		return
	}
	util.Success(ctx, chapter)
}

// DeleteChapter godoc
// @Summary 删除章节
// @Tags 课程创作
// @Produce  json
// @Security ApiKeyAuth
// @Param   chapter_id path string true "章节ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/tutor/chapter/{chapter_id} [delete]
func (c *CourseController) DeleteChapter(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.CourseService.DeleteChapter(claims.UserID, ctx.Param("chapter_id")); err != nil {
		respondAuthoringError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// swagger:model AddLessonRequest
type AddLessonRequest struct {
	ChapterID   string `json:"chapterId" binding:"required"`
	Name        string `json:"name" binding:"required"`
	LessonIndex int    `json:"lessonIndex" binding:"min=0"`
}

// AddLesson godoc
// @Summary 添加课时
// @Tags 课程创作
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body AddLessonRequest true "课时信息"
// @Success 201 {object} util.Response{data=model.Lesson} "创建成功"
// @Router /api/tutor/lessons [post]
func (c *CourseController) AddLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AddLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.CourseService.AddLesson(claims.UserID, req.ChapterID, req.Name, req.LessonIndex)
	if err != nil {
		respondAuthoringError(ctx, err)
		return
	}
	util.Created(ctx, lesson)
}

// swagger:model EditLessonRequest
type EditLessonRequest struct {
	LessonID    string `json:"lessonId" binding:"required"`
	Name        string `json:"name" binding:"required"`
	LessonIndex int    `json:"lessonIndex" binding:"min=0"`
}

// EditLesson godoc
// @Summary 编辑课时
// @Tags 课程创作
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body EditLessonRequest true "课时信息"
// @Success 200 {object} util.Response{data=model.Lesson} "成功"
// @Router /api/tutor/lesson [put]
func (c *CourseController) EditLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req EditLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.CourseService.EditLesson(claims.UserID, req.LessonID, req.Name, req.LessonIndex)
	if err != nil {
		respondAuthoringError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// DeleteLesson godoc
// @Summary 删除课时
// @Description 已指向该课时的学生进度在下次查询时自动修复
// @Tags 课程创作
// @Produce  json
// @Security ApiKeyAuth
// @Param   lesson_id path string true "课时ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/tutor/lesson/{lesson_id} [delete]
func (c *CourseController) DeleteLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.CourseService.DeleteLesson(claims.UserID, ctx.Param("lesson_id")); err != nil {
		respondAuthoringError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// swagger:model AddMCQQuestionRequest
type AddMCQQuestionRequest struct {
	LessonID     string                   `json:"lessonId" binding:"required"`
	QuestionText string                   `json:"questionText" binding:"required"`
	Options      []service.MCQOptionInput `json:"options" binding:"required,min=2"`
}

// AddMCQQuestion godoc
// @Summary 添加选择题
// @Tags 课程创作
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body AddMCQQuestionRequest true "题目信息"
// @Success 201 {object} util.Response{data=model.Question} "创建成功"
// @Router /api/tutor/questions/mcq [post]
func (c *CourseController) AddMCQQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AddMCQQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.CourseService.AddMCQQuestion(claims.UserID, req.LessonID, req.QuestionText, req.Options)
	if err != nil {
		respondAuthoringError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// swagger:model AddTextQuestionRequest
type AddTextQuestionRequest struct {
	LessonID      string `json:"lessonId" binding:"required"`
	QuestionText  string `json:"questionText" binding:"required"`
	CorrectAnswer string `json:"correctAnswer" binding:"required"`
	CasingMatters bool   `json:"casingMatters"`
}

// AddTextQuestion godoc
// @Summary 添加文本题
// @Tags 课程创作
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body AddTextQuestionRequest true "题目信息"
// @Success 201 {object} util.Response{data=model.Question} "创建成功"
// @Router /api/tutor/questions/text [post]
func (c *CourseController) AddTextQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AddTextQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.CourseService.AddTextQuestion(claims.UserID, req.LessonID, req.QuestionText, req.CorrectAnswer, req.CasingMatters)
	if err != nil {
		respondAuthoringError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// swagger:model EditMCQQuestionRequest
type EditMCQQuestionRequest struct {
	QuestionID   string                   `json:"questionId" binding:"required"`
	QuestionText string                   `json:"questionText" binding:"required"`
	Options      []service.MCQOptionInput `json:"options" binding:"required,min=2"`
}

// EditMCQQuestion godoc
// @Summary 编辑选择题
// @Tags 课程创作
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body EditMCQQuestionRequest true "题目信息"
// @Success 200 {object} util.Response{data=model.Question} "成功"
// @Router /api/tutor/question/mcq [put]
func (c *CourseController) EditMCQQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req EditMCQQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.CourseService.EditMCQQuestion(claims.UserID, req.QuestionID, req.QuestionText, req.Options)
	if err != nil {
		respondAuthoringError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// swagger:model EditTextQuestionRequest
type EditTextQuestionRequest struct {
	QuestionID    string `json:"questionId" binding:"required"`
	QuestionText  string `json:"questionText" binding:"required"`
	CorrectAnswer string `json:"correctAnswer" binding:"required"`
	CasingMatters bool   `json:"casingMatters"`
}

// EditTextQuestion godoc
// @Summary 编辑文本题
// @Tags 课程创作
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body EditTextQuestionRequest true "题目信息"
// @Success 200 {object} util.Response{data=model.Question} "成功"
// @Router /api/tutor/question/text [put]
func (c *CourseController) EditTextQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req EditTextQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.CourseService.EditTextQuestion(claims.UserID, req.QuestionID, req.QuestionText, req.CorrectAnswer, req.CasingMatters)
	if err != nil {
		respondAuthoringError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// DeleteQuestion godoc
// @Summary 删除题目
// @Tags 课程创作
// @Produce  json
// @Security ApiKeyAuth
// @Param   question_id path string true "题目ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/tutor/question/{question_id} [delete]
func (c *CourseController) DeleteQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.CourseService.DeleteQuestion(claims.UserID, ctx.Param("question_id")); err != nil {
		respondAuthoringError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// LessonQuestions godoc
// @Summary 课时题目（导师视角，含答案）
// @Tags 课程创作
// @Produce  json
// @Security ApiKeyAuth
// @Param   lesson_id path string true "课时ID"
// @Success 200 {object} util.Response{data=model.Lesson} "成功"
// @Router /api/tutor/lesson/{lesson_id}/questions [get]
func (c *CourseController) LessonQuestions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	lesson, err := c.CourseService.LessonQuestions(claims.UserID, ctx.Param("lesson_id"))
	if err != nil {
		respondAuthoringError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"lesson": lesson})
}

// UploadAttachment godoc
// @Summary 上传课时附件
// @Tags 课程创作
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   lesson_id formData string true "课时ID"
// @Param   file formData file true "附件文件"
// @Success 201 {object} util.Response{data=model.LessonAttachment} "上传成功"
// @Router /api/tutor/attachments [post]
func (c *CourseController) UploadAttachment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	lessonID := ctx.PostForm("lesson_id")
	if lessonID == "" {
		util.BadRequest(ctx, "lesson_id is required")
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	attachment, err := c.AttachmentService.Upload(ctx.Request.Context(), claims.UserID, lessonID, fileHeader.Filename, file, fileHeader.Size, contentType)
	if err != nil {
		respondAuthoringError(ctx, err)
		return
	}
	util.Created(ctx, attachment)
}

// ListAttachments godoc
// @Summary 课时附件列表
// @Tags 课程创作
// @Produce  json
// @Security ApiKeyAuth
// @Param   lesson_id path string true "课时ID"
// @Success 200 {object} util.Response{data=[]model.LessonAttachment} "成功"
// @Router /api/tutor/lesson/{lesson_id}/attachments [get]
func (c *CourseController) ListAttachments(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	attachments, err := c.AttachmentService.ListByLesson(claims.UserID, ctx.Param("lesson_id"))
	if err != nil {
		respondAuthoringError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"attachments": attachments})
}

// DeleteAttachment godoc
// @Summary 删除课时附件
// @Tags 课程创作
// @Produce  json
// @Security ApiKeyAuth
// @Param   attachment_id path string true "附件ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/tutor/attachment/{attachment_id} [delete]
func (c *CourseController) DeleteAttachment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.AttachmentService.Delete(ctx.Request.Context(), claims.UserID, ctx.Param("attachment_id")); err != nil {
		respondAuthoringError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListTags godoc
// @Summary 全部标签
// @Tags 课程创作
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Tag} "成功"
// @Router /api/tutor/tags [get]
func (c *CourseController) ListTags(ctx *gin.Context) {
	tags, err := c.TagService.ListTags()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"tags": tags})
}

// CourseTags godoc
// @Summary 课程标签
// @Tags 课程创作
// @Produce  json
// @Security ApiKeyAuth
// @Param   course_id path string true "课程ID"
// @Success 200 {object} util.Response{data=[]model.CourseTag} "成功"
// @Router /api/tutor/course/{course_id}/tags [get]
func (c *CourseController) CourseTags(ctx *gin.Context) {
	courseTags, err := c.TagService.CourseTags(ctx.Param("course_id"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"tags": courseTags})
}

// swagger:model SaveCourseTagsRequest
type SaveCourseTagsRequest struct {
	CourseID string   `json:"courseId" binding:"required"`
	TagIDs   []string `json:"tagIds"`
}

// SaveCourseTags godoc
// @Summary 保存课程标签
// @Description 以提交的集合整体替换课程标签
// @Tags 课程创作
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body SaveCourseTagsRequest true "标签集合"
// @Success 200 {object} util.Response "成功"
// @Router /api/tutor/course-tags [post]
func (c *CourseController) SaveCourseTags(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SaveCourseTagsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.TagService.SaveCourseTags(claims.UserID, req.CourseID, req.TagIDs); err != nil {
		respondAuthoringError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// CourseBadge godoc
// @Summary 课程徽章
// @Tags 课程创作
// @Produce  json
// @Security ApiKeyAuth
// @Param   course_id path string true "课程ID"
// @Success 200 {object} util.Response{data=model.Badge} "成功"
// @Router /api/tutor/course/{course_id}/badge [get]
func (c *CourseController) CourseBadge(ctx *gin.Context) {
	badge, err := c.BadgeService.GetCourseBadge(ctx.Param("course_id"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"badge": badge})
}

// swagger:model CreateBadgeIconRequest
type CreateBadgeIconRequest struct {
	CourseID string `json:"courseId" binding:"required"`
	Name     string `json:"name" binding:"required"`
	IconName string `json:"iconName" binding:"required"`
}

// CreateBadgeIcon godoc
// @Summary 创建图标徽章
// @Tags 课程创作
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CreateBadgeIconRequest true "徽章信息"
// @Success 201 {object} util.Response{data=model.Badge} "创建成功"
// @Router /api/tutor/badge/icon [post]
func (c *CourseController) CreateBadgeIcon(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CreateBadgeIconRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	badge, err := c.BadgeService.CreateIconBadge(claims.UserID, req.CourseID, req.Name, req.IconName)
	if err != nil {
		respondAuthoringError(ctx, err)
		return
	}
	util.Created(ctx, badge)
}

// CreateBadgeImage godoc
// @Summary 创建图片徽章
// @Tags 课程创作
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   course_id formData string true "课程ID"
// @Param   name formData string true "徽章名称"
// @Param   file formData file true "徽章图片"
// @Success 201 {object} util.Response{data=model.Badge} "创建成功"
// @Router /api/tutor/badge/image [post]
func (c *CourseController) CreateBadgeImage(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID := ctx.PostForm("course_id")
	name := ctx.PostForm("name")
	if courseID == "" || name == "" {
		util.BadRequest(ctx, "course_id and name are required")
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	badge, err := c.BadgeService.CreateImageBadge(ctx.Request.Context(), claims.UserID, courseID, name, fileHeader.Filename, file, fileHeader.Size, contentType)
	if err != nil {
		respondAuthoringError(ctx, err)
		return
	}
	util.Created(ctx, badge)
}
