package appcontext

import (
	"context"
	"log"

	"github.com/RowdyKGZ/python12-shop/internal/config"
	"github.com/RowdyKGZ/python12-shop/internal/infra/repository/db"
	"github.com/RowdyKGZ/python12-shop/internal/service"
	"github.com/RowdyKGZ/python12-shop/internal/token"
	"gorm.io/gorm"
)

type ApplicationContext struct {
	Cf             *config.Config
	DbConn         *gorm.DB
	DbDao          *db.DbDao
	TokenMaker     token.Maker
	UserRepo       db.IUserRepository
	ProductRepo    db.IProductRepository
	ReviewRepo     db.IReviewRepository
	OrderRepo      db.IOrderRepository
	AuthService    service.IAuthService
	ProductService service.IProductService
	ReviewService  service.IReviewService
	OrderService   service.IOrderService
}

func NewApplicationContext(cf *config.Config) (*ApplicationContext, error) {
	app := ApplicationContext{
		Cf: cf,
	}
	err := app.Init()

	if err != nil {
		return nil, err
	}

	return &app, nil
}

func (app *ApplicationContext) Init() error {
	err := app.setUpDbConn()
	if err != nil {
		return err
	}

	err = app.setUpDbDao()
	if err != nil {
		return err
	}

	err = app.setUpTokenMaker()
	if err != nil {
		return err
	}

	app.setUpRepos()
	app.setUpServices()

	return nil
}

func (app *ApplicationContext) setUpDbConn() error {
	log.Printf("Start setup db connection")
	conn, err := db.GetDbConn(app.Cf.DbName, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbUser, app.Cf.DbPas)
	if err != nil {
		return err
	}
	app.DbConn = conn
	log.Printf("Finish setup db connection")
	return nil
}

func (app *ApplicationContext) setUpDbDao() error {
	log.Printf("Start setup db schema")
	app.DbDao = db.NewDbDao(app.DbConn)
	if err := app.DbDao.InitMigrate(); err != nil {
		return err
	}
	log.Printf("Finish setup db schema")
	return nil
}

func (app *ApplicationContext) setUpTokenMaker() error {
	maker, err := token.NewPasetoMaker(app.Cf.AuthTokenKey)
	if err != nil {
		return err
	}
	app.TokenMaker = maker
	return nil
}

func (app *ApplicationContext) setUpRepos() {
	app.UserRepo = db.NewUserRepo(app.DbDao)
	app.ProductRepo = db.NewProductRepo(app.DbDao)
	app.ReviewRepo = db.NewReviewRepo(app.DbDao)
	app.OrderRepo = db.NewOrderRepo(app.DbDao)
}

func (app *ApplicationContext) setUpServices() {
	app.AuthService = service.NewAuthService(app.UserRepo, app.TokenMaker)
	app.ProductService = service.NewProductService(app.ProductRepo)
	app.ReviewService = service.NewReviewService(app.ReviewRepo, app.ProductRepo)
	app.OrderService = service.NewOrderService(app.OrderRepo, app.ProductRepo)
}

func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	if app.DbConn != nil {
		sqlDB, err := app.DbConn.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
