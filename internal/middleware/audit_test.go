package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/brikvest/backend/internal/models"
	"github.com/brikvest/backend/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestParseRouteInfo(t *testing.T) {
	tests := []struct {
		path   string
		method string
		module string
		action string
	}{
		{"/api/properties", "POST", "Properties", "Create"},
		{"/api/properties/:id", "PUT", "Properties", "Update"},
		{"/api/properties/:id", "DELETE", "Properties", "Delete"},
		{"/api/investment-groups/:id/status", "PUT", "Investment Groups", "Update"},
		{"/api/upload/document", "POST", "Upload", "Create"},
		{"/api/", "POST", "Unknown", "Create"},
	}

	for _, tt := range tests {
		module, action := parseRouteInfo(tt.path, tt.method)
		if module != tt.module || action != tt.action {
			t.Errorf("parseRouteInfo(%q, %q) = (%q, %q), expected (%q, %q)",
				tt.path, tt.method, module, action, tt.module, tt.action)
		}
	}
}

func TestFormatAuditMessage(t *testing.T) {
	msg := formatAuditMessage("admin", "DELETE", "/api/properties/3", 200)
	for _, want := range []string{"admin", "DELETE", "/api/properties/3", "OK"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q should contain %q", msg, want)
		}
	}

	msg = formatAuditMessage("admin", "POST", "/api/properties", 400)
	if !strings.Contains(msg, "Failed") {
		t.Errorf("message %q should end with Failed for non-2xx status", msg)
	}
}

func TestMaskSensitiveFields(t *testing.T) {
	body := `{"username":"admin","password":"hunter2"}`
	masked := maskSensitiveFields(body)

	if strings.Contains(masked, "hunter2") {
		t.Errorf("password value should be masked, got %q", masked)
	}
	if !strings.Contains(masked, "admin") {
		t.Errorf("non-sensitive values should survive, got %q", masked)
	}
}

func TestAuditLogLevels(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.SystemLog{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	services.InitSystemLogger(db)
	defer services.InitSystemLogger(nil)

	r := gin.New()
	r.Use(AuditLog())
	r.POST("/api/properties", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	r.PUT("/api/properties/:id", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	r.DELETE("/api/properties/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		method    string
		path      string
		wantLevel string
	}{
		{"POST", "/api/properties", "error"},
		{"PUT", "/api/properties/1", "warning"},
		{"DELETE", "/api/properties/1", "info"},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

		var entry models.SystemLog
		if err := db.Order("id DESC").First(&entry).Error; err != nil {
			t.Fatalf("%s %s: no audit row: %v", tt.method, tt.path, err)
		}
		if entry.Level != tt.wantLevel {
			t.Errorf("%s %s logged level %q, want %q", tt.method, tt.path, entry.Level, tt.wantLevel)
		}
	}
}

func TestMaskSensitiveFields_NoSensitiveKeys(t *testing.T) {
	body := `{"name":"Lekki Gardens","total_slots":100}`
	if masked := maskSensitiveFields(body); masked != body {
		t.Errorf("body without sensitive keys should be unchanged, got %q", masked)
	}
}
