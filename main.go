package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/kinocourses/kinocourses/config"
	"github.com/kinocourses/kinocourses/database"
	"github.com/kinocourses/kinocourses/logger"
	"github.com/kinocourses/kinocourses/web"
	"github.com/kinocourses/kinocourses/web/service"

	"github.com/op/go-logging"
	"github.com/spf13/cobra"
)

func initLogger() {
	switch config.GetLogLevel() {
	case config.Debug:
		logger.InitLogger(logging.DEBUG)
	case config.Info:
		logger.InitLogger(logging.INFO)
	case config.Notice:
		logger.InitLogger(logging.NOTICE)
	case config.Warn:
		logger.InitLogger(logging.WARNING)
	case config.Error:
		logger.InitLogger(logging.ERROR)
	default:
		log.Fatal("unknown log level:", config.GetLogLevel())
	}
}

func initDB() error {
	return database.InitDB(config.GetDatabaseConfig())
}

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())

	initLogger()
	defer logger.CloseLogger()

	err := initDB()
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := database.CloseDB(); err != nil {
			logger.Warning("close database err:", err)
		}
	}()

	server := web.NewServer()
	err = server.Start()
	if err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	// Trap shutdown signals
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGINT)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			logger.Info("Received SIGHUP signal. Restarting server...")
			err := server.Stop()
			if err != nil {
				logger.Warning("stop server err:", err)
			}
			server = web.NewServer()
			err = server.Start()
			if err != nil {
				log.Println(err)
				return
			}
		default:
			logger.Info("Shutting down server...")
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			return
		}
	}
}

func addUser(email, password, nickname string) {
	err := initDB()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer database.CloseDB()

	userService := service.UserService{}
	user, err := userService.AddUser(email, password, nickname)
	if err != nil {
		fmt.Println("add user failed:", err)
		return
	}
	fmt.Printf("user %s added, id: %d\n", user.Email, user.Id)
}

func listUsers() {
	err := initDB()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer database.CloseDB()

	userService := service.UserService{}
	users, err := userService.GetUsers()
	if err != nil {
		fmt.Println("list users failed:", err)
		return
	}
	if len(users) == 0 {
		fmt.Println("no users")
		return
	}
	for _, user := range users {
		fmt.Printf("%d\t%s\t%s\n", user.Id, user.Email, user.DisplayName())
	}
}

func seedCourses() {
	err := initDB()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer database.CloseDB()

	courseService := service.CourseService{}
	n, err := courseService.SeedDemoCourses()
	if err != nil {
		fmt.Println("seed courses failed:", err)
		return
	}
	fmt.Printf("%d courses added\n", n)
}

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	var rootCmd = &cobra.Command{
		Use:   config.GetName(),
		Short: "Online cinema course catalog",
	}

	var runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the web server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	var userCmd = &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}

	var userAddCmd = &cobra.Command{
		Use:   "add",
		Short: "Create an account",
		Run: func(cmd *cobra.Command, args []string) {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			nickname, _ := cmd.Flags().GetString("nickname")
			addUser(email, password, nickname)
		},
	}

	userAddCmd.Flags().String("email", "", "login email")
	userAddCmd.Flags().String("password", "", "login password")
	userAddCmd.Flags().String("nickname", "", "optional display name")
	_ = userAddCmd.MarkFlagRequired("email")
	_ = userAddCmd.MarkFlagRequired("password")

	var userListCmd = &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Run: func(cmd *cobra.Command, args []string) {
			listUsers()
		},
	}

	userCmd.AddCommand(userAddCmd, userListCmd)

	var courseCmd = &cobra.Command{
		Use:   "course",
		Short: "Manage the catalog",
	}

	var seedCmd = &cobra.Command{
		Use:   "seed",
		Short: "Add the demo courses to an empty catalog",
		Run: func(cmd *cobra.Command, args []string) {
			seedCourses()
		},
	}

	courseCmd.AddCommand(seedCmd)

	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(config.GetVersion())
		},
	}

	rootCmd.AddCommand(runCmd, userCmd, courseCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
