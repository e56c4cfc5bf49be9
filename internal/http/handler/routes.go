package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"dataroom/internal/http/middleware"
	"dataroom/internal/service"
)

// Services bundles everything the route table depends on.
type Services struct {
	Folders service.FolderService
	Files   service.FileService
	Search  service.SearchService
	Auth    service.AuthService
}

// RegisterRoutes wires every endpoint. Health and auth endpoints are public;
// the dataroom surface requires a valid session cookie.
func RegisterRoutes(app *fiber.App, db *sql.DB, svcs Services, sess *middleware.Session) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	auth := app.Group("/auth")
	auth.Post("/register", Register(svcs.Auth, sess))
	auth.Post("/login", Login(svcs.Auth, sess))
	auth.Post("/logout", Logout(sess))
	auth.Get("/me", sess.Required(), Me(svcs.Auth, sess))

	api := app.Group("/", sess.Required())

	api.Get("/datarooms", ListDatarooms(svcs.Folders))
	api.Post("/datarooms", CreateDataroom(svcs.Folders))

	api.Get("/folders/root", GetRootFolder(svcs.Folders))
	api.Get("/folders/:id/contents", GetFolderContents(svcs.Folders))
	api.Post("/folders", CreateFolder(svcs.Folders))
	api.Patch("/folders/:id", RenameFolder(svcs.Folders))
	api.Delete("/folders/:id", DeleteFolder(svcs.Folders))

	api.Post("/files", UploadFile(svcs.Files))
	api.Get("/files/:id", GetFile(svcs.Files))
	api.Get("/files/:id/download", DownloadFile(svcs.Files))
	api.Patch("/files/:id", RenameFile(svcs.Files))
	api.Delete("/files/:id", DeleteFile(svcs.Files))

	api.Get("/search", Search(svcs.Search))
}
