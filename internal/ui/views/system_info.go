package views

import (
	"fmt"

	"github.com/pterm/pterm"
)

type SystemInfoItem struct {
	ConfigPath string
	DBPath     string
	DBExists   bool // true = Found, false = Not Found
	LogDriver  string
	LogPath    string
	LogRecords int64
	Accounts   int
	Workers    int
	Concurrent bool
	AppDataDir string
}

func RenderSystemInfo(data SystemInfoItem) error {
	dbStatus := pterm.Green("Found")
	if !data.DBExists {
		dbStatus = pterm.Red("Not Found (Will be created)")
	}

	mode := "concurrent"
	if !data.Concurrent {
		mode = "sequential"
	}

	logLocation := data.LogPath
	if logLocation == "" {
		logLocation = "(database table transfer_log)"
	}

	tableData := pterm.TableData{
		{"Configuration File", data.ConfigPath},
		{"Database Path", data.DBPath},
		{"Database Status", dbStatus},
		{"Accounts", fmt.Sprintf("%d", data.Accounts)},
		{"Transaction Log", fmt.Sprintf("%s %s", data.LogDriver, logLocation)},
		{"Log Records", fmt.Sprintf("%d", data.LogRecords)},
		{"Workers", fmt.Sprintf("%d (%s)", data.Workers, mode)},
		{"AppData Directory", data.AppDataDir},
	}

	return pterm.DefaultTable.WithData(tableData).Render()
}
