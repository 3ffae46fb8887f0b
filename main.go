package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jvlcode/goblog/config"
	"github.com/jvlcode/goblog/database"
	"github.com/jvlcode/goblog/logger"
	"github.com/jvlcode/goblog/web"
	"github.com/jvlcode/goblog/web/service"

	"github.com/op/go-logging"
	"github.com/spf13/cobra"
)

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())

	switch config.GetLogLevel() {
	case config.Debug:
		logger.InitLogger(logging.DEBUG)
	case config.Info:
		logger.InitLogger(logging.INFO)
	case config.Warn:
		logger.InitLogger(logging.WARNING)
	case config.Error:
		logger.InitLogger(logging.ERROR)
	default:
		log.Fatal("unknown log level:", config.GetLogLevel())
	}

	err := database.InitDB(config.GetDBPath())
	if err != nil {
		log.Fatal(err)
	}

	server := web.NewServer()
	err = server.Start()
	if err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	// Trap shutdown signals
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGINT)
	<-sigCh

	if err := server.Stop(); err != nil {
		logger.Warning("stop server err:", err)
	}
	if err := database.CloseDB(); err != nil {
		logger.Warning("close db err:", err)
	}
	logger.CloseLogger()
}

func showSetting() {
	err := database.InitDB(config.GetDBPath())
	if err != nil {
		fmt.Println(err)
		return
	}

	userService := service.UserService{}
	user, err := userService.GetUser(1)
	if err != nil {
		fmt.Println("get admin user failed:", err)
		return
	}
	fmt.Println("current settings as follows:")
	fmt.Println("username:", user.Username)
	fmt.Println("email:", user.Email)
	fmt.Println("port:", config.GetPort())
}

func updateSetting(username string, password string) {
	err := database.InitDB(config.GetDBPath())
	if err != nil {
		fmt.Println(err)
		return
	}

	userService := service.UserService{}
	if password != "" {
		if err := userService.UpdatePassword(1, password); err != nil {
			fmt.Println("set password failed:", err)
		} else {
			fmt.Println("set password success")
		}
	}
	if username != "" {
		if err := userService.UpdateUsername(1, username); err != nil {
			fmt.Println("set username failed:", err)
		} else {
			fmt.Println("set username success")
		}
	}
}

func main() {
	config.LoadEnvFile()

	var rootCmd = &cobra.Command{
		Use: "goblog",
	}

	var runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the web server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	var settingCmd = &cobra.Command{
		Use:   "setting",
		Short: "Set settings",
	}

	var showCmd = &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		Run: func(cmd *cobra.Command, args []string) {
			showSetting()
		},
	}

	var updateCmd = &cobra.Command{
		Use:   "update",
		Short: "Update admin credentials",
		Run: func(cmd *cobra.Command, args []string) {
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")
			updateSetting(username, password)
		},
	}

	updateCmd.Flags().String("username", "", "set admin username")
	updateCmd.Flags().String("password", "", "set admin password")

	settingCmd.AddCommand(showCmd, updateCmd)
	rootCmd.AddCommand(runCmd, settingCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
