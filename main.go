package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"aims/internal/sheetdb"
	"aims/internal/websocket"
)

var (
	store *sheetdb.Store
	hub   *websocket.Hub
	cfg   Config
)

func main() {
	configPath := flag.String("config", "aims.yaml", "Path to YAML config file")
	port := flag.Int("port", 0, "HTTP port (overrides config)")
	backend := flag.String("backend", "", "Storage backend: sheets, xlsx, sqlite, memory (overrides config)")
	flag.Parse()

	var err error
	cfg, err = LoadConfig(*configPath)
	if err != nil {
		log.Fatal("Config load failed: ", err)
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *backend != "" {
		cfg.Backend = *backend
	}

	initSessions(cfg.SessionSecret)
	hub = websocket.NewHub()

	store, err = openStore(cfg)
	if err != nil {
		// Degraded mode: the server starts, data endpoints answer 503.
		log.Printf("Store init failed, running degraded: %v", err)
		store = nil
	}

	if err := os.MkdirAll(cfg.UploadsDir, 0755); err != nil {
		log.Printf("uploads dir: %v", err)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("AIMS server starting on http://localhost%s (backend=%s)", addr, cfg.Backend)
	log.Fatal(http.ListenAndServe(addr, logging(requireStore(requireAuth(newMux())))))
}

// openStore builds the configured backend and opens the record store over
// it. sheets credential problems surface as sheetdb.ErrCredentials.
func openStore(cfg Config) (*sheetdb.Store, error) {
	var (
		b   sheetdb.Backend
		err error
	)
	switch cfg.Backend {
	case "sheets":
		b, err = sheetdb.NewSheetsBackend(cfg.CredentialsPath)
	case "xlsx":
		b, err = sheetdb.NewXLSXBackend(cfg.WorkbookPath)
	case "sqlite":
		b, err = sheetdb.NewSQLiteBackend(cfg.DatabasePath)
	case "memory":
		b = sheetdb.NewMemoryBackend()
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	return sheetdb.Open(b)
}

func newMux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "static/index.html")
	})

	mux.HandleFunc("/files/", func(w http.ResponseWriter, r *http.Request) {
		handleServeFile(w, r, strings.TrimPrefix(r.URL.Path, "/files/"))
	})

	mux.HandleFunc("/auth/register", methodOnly("POST", handleRegister))
	mux.HandleFunc("/auth/login", methodOnly("POST", handleLogin))
	mux.HandleFunc("/auth/logout", methodOnly("POST", handleLogout))
	mux.HandleFunc("/auth/me", handleMe)

	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		websocket.Serve(hub, w, r)
	})

	mux.HandleFunc("/api/v1/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		path := strings.TrimPrefix(r.URL.Path, "/api/v1/")
		path = strings.TrimSuffix(path, "/")
		parts := strings.Split(path, "/")

		switch {
		case path == "config" && r.Method == "GET":
			handleConfig(w, r)

		case path == "dashboard" && r.Method == "GET":
			handleDashboard(w, r)

		// Master data
		case parts[0] == "locations" && len(parts) == 1 && r.Method == "GET":
			handleListLocations(w, r)
		case parts[0] == "locations" && len(parts) == 1 && r.Method == "POST":
			handleAddLocation(w, r)
		case parts[0] == "locations" && len(parts) == 2 && r.Method == "DELETE":
			handleDeleteLocation(w, r, parts[1])

		case parts[0] == "categories" && len(parts) == 1 && r.Method == "GET":
			handleListCategories(w, r)
		case parts[0] == "categories" && len(parts) == 1 && r.Method == "POST":
			handleAddCategory(w, r)
		case parts[0] == "categories" && len(parts) == 2 && r.Method == "DELETE":
			handleDeleteCategory(w, r, parts[1])

		case parts[0] == "subcategories" && len(parts) == 1 && r.Method == "GET":
			handleListSubcategories(w, r)
		case parts[0] == "subcategories" && len(parts) == 1 && r.Method == "POST":
			handleAddSubcategory(w, r)
		case parts[0] == "subcategories" && len(parts) == 2 && r.Method == "DELETE":
			handleDeleteSubcategory(w, r, parts[1])

		case parts[0] == "assettypes" && len(parts) == 1 && r.Method == "GET":
			handleListAssetTypes(w, r)
		case parts[0] == "assettypes" && len(parts) == 1 && r.Method == "POST":
			handleAddAssetType(w, r)
		case parts[0] == "assettypes" && len(parts) == 2 && r.Method == "DELETE":
			handleDeleteAssetType(w, r, parts[1])

		case parts[0] == "brands" && len(parts) == 1 && r.Method == "GET":
			handleListBrands(w, r)
		case parts[0] == "brands" && len(parts) == 1 && r.Method == "POST":
			handleAddBrand(w, r)
		case parts[0] == "brands" && len(parts) == 2 && r.Method == "DELETE":
			handleDeleteBrand(w, r, parts[1])

		// Assets
		case parts[0] == "assets" && len(parts) == 1 && r.Method == "GET":
			handleListAssets(w, r)
		case parts[0] == "assets" && len(parts) == 1 && r.Method == "POST":
			handleCreateAsset(w, r)
		case parts[0] == "assets" && len(parts) == 2 && r.Method == "GET":
			handleGetAsset(w, r, parts[1])
		case parts[0] == "assets" && len(parts) == 2 && r.Method == "PUT":
			handleUpdateAsset(w, r, parts[1])
		case parts[0] == "assets" && len(parts) == 2 && r.Method == "DELETE":
			handleDeleteAsset(w, r, parts[1])
		case parts[0] == "assets" && len(parts) == 3 && parts[2] == "attachments" && r.Method == "POST":
			handleUploadAssetAttachment(w, r, parts[1])

		// Movements
		case parts[0] == "movements" && len(parts) == 1 && r.Method == "GET":
			handleListMovements(w, r)
		case parts[0] == "movements" && len(parts) == 1 && r.Method == "POST":
			handleCreateMovement(w, r)

		// Activity logs
		case path == "logs" && r.Method == "GET":
			handleListLogs(w, r)
		case path == "logs/export" && r.Method == "GET":
			handleExportLogs(w, r)

		// Reports
		case path == "reports/assets" && r.Method == "GET":
			handleReportAssets(w, r)
		case path == "reports/assets/export" && r.Method == "GET":
			handleExportReportAssets(w, r)
		case path == "reports/movements" && r.Method == "GET":
			handleReportMovements(w, r)
		case path == "reports/movements/export" && r.Method == "GET":
			handleExportReportMovements(w, r)

		// Depreciation
		case path == "depreciation" && r.Method == "GET":
			handleDepreciation(w, r)
		case path == "depreciation/export" && r.Method == "GET":
			handleExportDepreciation(w, r)

		// Barcodes
		case parts[0] == "barcodes" && len(parts) == 1 && r.Method == "GET":
			handleBarcodeLabels(w, r)
		case parts[0] == "barcodes" && len(parts) == 3 && parts[2] == "image" && r.Method == "GET":
			handleBarcodeImage(w, r, parts[1])

		// Users
		case path == "users" && r.Method == "GET":
			handleListUsers(w, r)

		default:
			jsonErr(w, "not found", 404)
		}
	})

	return mux
}

func methodOnly(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			jsonErr(w, "Method not allowed", 405)
			return
		}
		h(w, r)
	}
}

func handleConfig(w http.ResponseWriter, r *http.Request) {
	jsonResp(w, map[string]string{
		"company_name":  cfg.CompanyName,
		"company_email": cfg.CompanyEmail,
	})
}

func jsonResp(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(APIResponse{Data: data})
}

// jsonRespStatus sets the Content-Type before writing the status line, so
// the header survives on routes that don't pre-set it.
func jsonRespStatus(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(APIResponse{Data: data})
}

func jsonRespMeta(w http.ResponseWriter, data interface{}, total int) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(APIResponse{Data: data, Meta: &Meta{Total: total}})
}

func jsonErr(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func decodeBody(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}
