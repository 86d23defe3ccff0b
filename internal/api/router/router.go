package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/n4clon1/academic-site/config"
	"github.com/n4clon1/academic-site/internal/api/handler"
	"github.com/n4clon1/academic-site/internal/api/middleware"
	"github.com/n4clon1/academic-site/pkg/jwt"
	"github.com/n4clon1/academic-site/pkg/redis"
)

// multipartOverhead 上传请求中表单边界等额外开销的余量
const multipartOverhead = 1 << 20

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	handler.RegisterValidators()

	r := gin.New()
	r.MaxMultipartMemory = cfg.Server.MaxUploadBytes()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger, "/health"))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 会话模块（无需认证）
		v1.POST("/sessions", h.Session.CreateSession)

		// 需要会话令牌的路由
		authorized := v1.Group("")
		authorized.Use(middleware.SessionAuth(jwtMgr, rdb, logger))
		{
			authorized.DELETE("/sessions/current", h.Session.CloseSession)

			// 工作簿模块
			workbook := authorized.Group("/workbook")
			{
				workbook.POST("",
					middleware.RateLimit(rdb, cfg.RateLimit.UploadPerMinute, time.Minute),
					middleware.BodyLimit(cfg.Server.MaxUploadBytes()+multipartOverhead),
					h.Workbook.Upload,
				)
				workbook.GET("", h.Workbook.GetSummary)
				workbook.GET("/faculties", h.Workbook.ListFaculties)
				workbook.POST("/directions/:id/subject-name/toggle", h.Workbook.ToggleSubjectName)
			}

			// 教师模块
			instructors := authorized.Group("/instructors")
			{
				instructors.GET("", h.Instructor.ListInstructors)
				instructors.POST("", h.Instructor.CreateInstructor)
				instructors.GET("/built-in", h.Instructor.ListBuiltIn)
				instructors.POST("/built-in", h.Instructor.AddBuiltIn)
				instructors.POST("/selection", h.Instructor.SetSelection)
				instructors.DELETE("/:id", h.Instructor.DeleteInstructor)
				instructors.POST("/:id/selection/toggle", h.Instructor.ToggleSelection)
			}

			// 分配模块
			assignments := authorized.Group("/assignments")
			{
				assignments.GET("", h.Assignment.ListAssignments)
				assignments.POST("", h.Assignment.Attach)
				assignments.DELETE("/:id", h.Assignment.Detach)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/workbook", h.Export.ExportWorkbook)
				export.GET("/assignments.csv", h.Export.ExportAssignmentsCSV)
			}
		}
	}

	return r
}
