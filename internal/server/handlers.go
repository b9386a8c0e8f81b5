// file: internal/server/handlers.go
// version: 1.2.0
// guid: a9b0c1d2-e3f4-5a6b-7c8d-e9f0a1b2c3d4

package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/hoangdinhthien/swimadmin/internal/models"
	"github.com/hoangdinhthien/swimadmin/internal/upstream"
)

func (s *Server) registerRoutes(engine *gin.Engine) {
	api := engine.Group("/api/v1")

	api.POST("/auth/login", s.handleLogin)
	api.POST("/auth/logout", s.handleLogout)
	api.GET("/profile", s.handleProfile)
	api.GET("/tenants", s.handleListTenants)

	students := api.Group("/students")
	students.GET("", s.handleListStudents)
	students.GET("/:id", s.handleGetStudent)
	students.POST("", s.handleCreateStudent)
	students.PUT("/:id", s.handleUpdateStudent)
	students.DELETE("/:id", s.handleDeleteStudent)

	instructors := api.Group("/instructors")
	instructors.GET("", s.handleListInstructors)
	instructors.GET("/:id", s.handleGetInstructor)
	instructors.POST("", s.handleCreateInstructor)
	instructors.PUT("/:id", s.handleUpdateInstructor)
	instructors.DELETE("/:id", s.handleDeleteInstructor)

	staff := api.Group("/staff")
	staff.GET("", s.handleListStaff)
	staff.GET("/:id", s.handleGetStaff)
	staff.POST("", s.handleCreateStaff)
	staff.PUT("/:id", s.handleUpdateStaff)
	staff.DELETE("/:id", s.handleDeleteStaff)

	courses := api.Group("/courses")
	courses.GET("", s.handleListCourses)
	courses.GET("/:id", s.handleGetCourse)
	courses.POST("", s.handleCreateCourse)
	courses.PUT("/:id", s.handleUpdateCourse)
	courses.DELETE("/:id", s.handleDeleteCourse)

	classes := api.Group("/classes")
	classes.GET("", s.handleListClasses)
	classes.GET("/:id", s.handleGetClass)
	classes.POST("", s.handleCreateClass)
	classes.PUT("/:id", s.handleUpdateClass)
	classes.GET("/:id/members", s.handleClassMembers)
	classes.POST("/:id/members", s.handleAddClassMember)
	classes.DELETE("/:id/members/:userID", s.handleRemoveClassMember)

	pools := api.Group("/pools")
	pools.GET("", s.handleListPools)
	pools.GET("/:id", s.handleGetPool)
	pools.POST("", s.handleCreatePool)
	pools.PUT("/:id", s.handleUpdatePool)
	pools.DELETE("/:id", s.handleDeletePool)

	api.GET("/slots", s.handleListSlots)
	api.GET("/slots/:id", s.handleGetSlot)

	api.GET("/permissions", s.handleListPermissions)
	api.PUT("/permissions/:id", s.handleUpdatePermission)

	reviews := api.Group("/reviews")
	reviews.GET("", s.handleListReviews)
	reviews.GET("/:id", s.handleGetReview)
	reviews.PUT("/:id/approve", s.handleApproveReview)
	reviews.PUT("/:id/reject", s.handleRejectReview)

	api.GET("/schedule", s.handleSchedule)
	api.POST("/schedule", s.handleCreateScheduleEntry)
	api.DELETE("/schedule/:id", s.handleDeleteScheduleEntry)
}

// reqCtx propagates the caller's tenant selection to the upstream client.
func reqCtx(c *gin.Context) context.Context {
	ctx := c.Request.Context()
	if tenant := c.GetHeader("X-Tenant-ID"); tenant != "" {
		ctx = upstream.WithTenant(ctx, tenant)
	}
	return ctx
}

func intQuery(c *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}

// respondError maps upstream failures onto gateway status codes. Not-found
// becomes 404; everything else is a bad gateway with the upstream message.
func respondError(c *gin.Context, err error) {
	if errors.Is(err, upstream.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
}

func respondRecord[T any](c *gin.Context, rec *T, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// --- auth / profile ---

func (s *Server) handleLogin(c *gin.Context) {
	var body struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := s.client.Login(reqCtx(c), body.Username, body.Password)
	respondRecord(c, res, err)
}

func (s *Server) handleLogout(c *gin.Context) {
	// Forget cached responses and pending flights for the old session.
	s.client.Reset()
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

func (s *Server) handleProfile(c *gin.Context) {
	user, err := s.client.CurrentUser(reqCtx(c))
	respondRecord(c, user, err)
}

func (s *Server) handleListTenants(c *gin.Context) {
	tenants, err := s.client.ListTenants(reqCtx(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": tenants})
}

// --- students ---

func (s *Server) handleListStudents(c *gin.Context) {
	page, err := s.client.ListStudents(reqCtx(c), intQuery(c, "page", 1), intQuery(c, "limit", 10))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) handleGetStudent(c *gin.Context) {
	rec, err := s.client.GetStudent(reqCtx(c), c.Param("id"))
	respondRecord(c, rec, err)
}

func (s *Server) handleCreateStudent(c *gin.Context) {
	var input upstream.StudentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rec, err := s.client.CreateStudent(reqCtx(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (s *Server) handleUpdateStudent(c *gin.Context) {
	var input upstream.StudentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rec, err := s.client.UpdateStudent(reqCtx(c), c.Param("id"), input)
	respondRecord(c, rec, err)
}

func (s *Server) handleDeleteStudent(c *gin.Context) {
	if err := s.client.DeleteStudent(reqCtx(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- instructors ---

func (s *Server) handleListInstructors(c *gin.Context) {
	page, err := s.client.ListInstructors(reqCtx(c), intQuery(c, "page", 1), intQuery(c, "limit", 10))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) handleGetInstructor(c *gin.Context) {
	rec, err := s.client.GetInstructor(reqCtx(c), c.Param("id"))
	respondRecord(c, rec, err)
}

func (s *Server) handleCreateInstructor(c *gin.Context) {
	var input upstream.InstructorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rec, err := s.client.CreateInstructor(reqCtx(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (s *Server) handleUpdateInstructor(c *gin.Context) {
	var input upstream.InstructorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rec, err := s.client.UpdateInstructor(reqCtx(c), c.Param("id"), input)
	respondRecord(c, rec, err)
}

func (s *Server) handleDeleteInstructor(c *gin.Context) {
	if err := s.client.DeleteInstructor(reqCtx(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- staff ---

func (s *Server) handleListStaff(c *gin.Context) {
	page, err := s.client.ListStaff(reqCtx(c), intQuery(c, "page", 1), intQuery(c, "limit", 10))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) handleGetStaff(c *gin.Context) {
	rec, err := s.client.GetStaff(reqCtx(c), c.Param("id"))
	respondRecord(c, rec, err)
}

func (s *Server) handleCreateStaff(c *gin.Context) {
	var input upstream.StaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rec, err := s.client.CreateStaff(reqCtx(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (s *Server) handleUpdateStaff(c *gin.Context) {
	var input upstream.StaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rec, err := s.client.UpdateStaff(reqCtx(c), c.Param("id"), input)
	respondRecord(c, rec, err)
}

func (s *Server) handleDeleteStaff(c *gin.Context) {
	if err := s.client.DeleteStaff(reqCtx(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- courses ---

func (s *Server) handleListCourses(c *gin.Context) {
	courses, err := s.client.ListCourses(reqCtx(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if q := c.Query("q"); q != "" {
		filtered := make([]models.Course, 0, len(courses))
		for _, course := range courses {
			if fuzzy.MatchNormalizedFold(q, course.Title) {
				filtered = append(filtered, course)
			}
		}
		courses = filtered
	}
	c.JSON(http.StatusOK, gin.H{"items": courses, "total": len(courses)})
}

func (s *Server) handleGetCourse(c *gin.Context) {
	rec, err := s.client.GetCourse(reqCtx(c), c.Param("id"))
	respondRecord(c, rec, err)
}

func (s *Server) handleCreateCourse(c *gin.Context) {
	var input upstream.CourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rec, err := s.client.CreateCourse(reqCtx(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (s *Server) handleUpdateCourse(c *gin.Context) {
	var input upstream.CourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rec, err := s.client.UpdateCourse(reqCtx(c), c.Param("id"), input)
	respondRecord(c, rec, err)
}

func (s *Server) handleDeleteCourse(c *gin.Context) {
	if err := s.client.DeleteCourse(reqCtx(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- classes ---

func (s *Server) handleListClasses(c *gin.Context) {
	page, err := s.client.ListClasses(reqCtx(c),
		intQuery(c, "page", 1), intQuery(c, "limit", 10), c.Query("course"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) handleGetClass(c *gin.Context) {
	rec, err := s.client.GetClass(reqCtx(c), c.Param("id"))
	respondRecord(c, rec, err)
}

func (s *Server) handleCreateClass(c *gin.Context) {
	var input upstream.ClassInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rec, err := s.client.CreateClass(reqCtx(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (s *Server) handleUpdateClass(c *gin.Context) {
	var input upstream.ClassInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rec, err := s.client.UpdateClass(reqCtx(c), c.Param("id"), input)
	respondRecord(c, rec, err)
}

func (s *Server) handleClassMembers(c *gin.Context) {
	members, err := s.client.ClassMembers(reqCtx(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": members, "total": len(members)})
}

func (s *Server) handleAddClassMember(c *gin.Context) {
	var body struct {
		UserID string `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.client.AddClassMember(reqCtx(c), c.Param("id"), body.UserID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleRemoveClassMember(c *gin.Context) {
	if err := s.client.RemoveClassMember(reqCtx(c), c.Param("id"), c.Param("userID")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- pools ---

func (s *Server) handleListPools(c *gin.Context) {
	page, err := s.client.ListPools(reqCtx(c), intQuery(c, "page", 1), intQuery(c, "limit", 10))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) handleGetPool(c *gin.Context) {
	rec, err := s.client.GetPool(reqCtx(c), c.Param("id"))
	respondRecord(c, rec, err)
}

func (s *Server) handleCreatePool(c *gin.Context) {
	var input upstream.PoolInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rec, err := s.client.CreatePool(reqCtx(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (s *Server) handleUpdatePool(c *gin.Context) {
	var input upstream.PoolInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rec, err := s.client.UpdatePool(reqCtx(c), c.Param("id"), input)
	respondRecord(c, rec, err)
}

func (s *Server) handleDeletePool(c *gin.Context) {
	if err := s.client.DeletePool(reqCtx(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- slots ---

func (s *Server) handleListSlots(c *gin.Context) {
	slots, err := s.client.ListSlots(reqCtx(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": slots, "total": len(slots)})
}

func (s *Server) handleGetSlot(c *gin.Context) {
	rec, err := s.client.GetSlot(reqCtx(c), c.Param("id"))
	respondRecord(c, rec, err)
}

// --- permissions ---

func (s *Server) handleListPermissions(c *gin.Context) {
	perms, err := s.client.ListPermissions(reqCtx(c), c.Query("module"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": perms, "total": len(perms)})
}

func (s *Server) handleUpdatePermission(c *gin.Context) {
	var body struct {
		Module string   `json:"module"`
		Roles  []string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rec, err := s.client.UpdatePermissionRoles(reqCtx(c), c.Param("id"), body.Module, body.Roles)
	respondRecord(c, rec, err)
}

// --- data review ---

func (s *Server) handleListReviews(c *gin.Context) {
	page, err := s.client.ListPendingReviews(reqCtx(c), intQuery(c, "page", 1), intQuery(c, "limit", 10))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) handleGetReview(c *gin.Context) {
	rec, err := s.client.GetReview(reqCtx(c), c.Param("id"))
	respondRecord(c, rec, err)
}

func (s *Server) handleApproveReview(c *gin.Context) {
	if err := s.client.ApproveReview(reqCtx(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "approved"})
}

func (s *Server) handleRejectReview(c *gin.Context) {
	var body struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&body)
	if err := s.client.RejectReview(reqCtx(c), c.Param("id"), body.Reason); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "rejected"})
}

// --- schedule ---

func (s *Server) handleSchedule(c *gin.Context) {
	from := c.Query("start_date")
	to := c.Query("end_date")
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date and end_date are required"})
		return
	}
	entries, err := s.client.Schedule(reqCtx(c), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": entries, "total": len(entries)})
}

func (s *Server) handleCreateScheduleEntry(c *gin.Context) {
	var entry models.ScheduleEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rec, err := s.client.CreateScheduleEntry(reqCtx(c), entry)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (s *Server) handleDeleteScheduleEntry(c *gin.Context) {
	if err := s.client.DeleteScheduleEntry(reqCtx(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
