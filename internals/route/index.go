package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tmc/langchaingo/llms"
	"gorm.io/gorm"

	"preschool_backend/internals/configs"
	"preschool_backend/internals/constants"
	generatorService "preschool_backend/internals/features/quizzes/generator/service"
	helperOSS "preschool_backend/internals/helpers/oss"
	authMiddleware "preschool_backend/internals/middlewares/auth"
	routeDetails "preschool_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	// ===================== DEPENDENCIES =====================
	blob := helperOSS.NewBlobServiceFromEnv("preschool", configs.UploadDir)
	files := helperOSS.NewLocalBlobService(configs.UploadDir, "/uploads")

	var llm llms.Model
	if m, err := generatorService.NewLLMFromConfig(); err != nil {
		log.Printf("[WARN] AI generator disabled: %v", err)
	} else {
		llm = m
	}

	// ===================== BASE / AUTH =====================
	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, db)

	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db)

	// ===================== GROUPS =====================

	// PUBLIC → tanpa auth
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/n")

	// KIOSK → identitas dari bearer opsional / X-User-ID
	log.Println("[INFO] Setting up KIOSK group...")
	kiosk := app.Group("/api/k", authMiddleware.IdentityMiddleware(db))

	// ADMIN → JWT wajib, guru & admin
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorTeacher("the admin panel"), constants.TeacherAndAbove...),
	)

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Mounting Children routes...")
	routeDetails.ChildrenAdminRoutes(admin, db, blob)
	routeDetails.ChildrenKioskRoutes(kiosk, db)

	log.Println("[INFO] Mounting Emotion routes...")
	routeDetails.EmotionPublicRoutes(public, db, files)
	routeDetails.EmotionAdminRoutes(admin, db, files)
	routeDetails.EmotionKioskRoutes(kiosk, db)

	log.Println("[INFO] Mounting Quiz routes...")
	routeDetails.QuizAdminRoutes(admin, db, llm)
	routeDetails.QuizKioskRoutes(kiosk, db)

	log.Println("[INFO] Mounting Reference + Utils routes...")
	routeDetails.ReferencePublicRoutes(public, db)
	routeDetails.UserAdminRoutes(admin, db)
	routeDetails.UploadAdminRoutes(admin, blob)

	log.Println("[INFO] Mounting Pages...")
	routeDetails.PageRoutes(app)

	log.Println("[INFO] All routes mounted.")
}
