package main

import (
	"github.com/blogfolio/blogfolio/config"
	"github.com/blogfolio/blogfolio/models"
	"github.com/blogfolio/blogfolio/routes"
	"github.com/blogfolio/blogfolio/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.Profile{},
		&models.Category{},
		&models.Tag{},
		&models.Post{},
		&models.Comment{},
		&models.Bookmark{},
		&models.Notification{},
		&models.Project{},
		&models.ContactMessage{},
		&models.Visitor{},
	)

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
