package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-composer/pkg/interfaces"
)

type recordingLogger struct {
	fields   []map[string]any
	contexts []context.Context
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	if fields == nil {
		fields = map[string]any{}
	}
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	r.fields = append(r.fields, copied)
	return r
}

func (r *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "composer.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	// Ensure WithContext/WithFields do not panic.
	ctx := context.Background()
	logger = logger.WithContext(ctx)
	logger = logger.WithFields(map[string]any{"foo": "bar"})
	logger.Debug("noop")
}

func TestModuleLoggerUsesProviderAndAnnotatesFields(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	logger := ModuleLogger(provider, sessionModule)

	if len(provider.requested) != 1 || provider.requested[0] != sessionModule {
		t.Fatalf("expected module %s, got %v", sessionModule, provider.requested)
	}

	if len(rec.fields) != 1 {
		t.Fatalf("expected module fields to be applied once, got %d", len(rec.fields))
	}

	if got, ok := rec.fields[0]["module"]; !ok || got != sessionModule {
		t.Fatalf("expected module field %s, got %v", sessionModule, rec.fields[0]["module"])
	}

	logger.Info("with provider")
}

func TestModuleLoggerDefaultsToRootModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, "")

	if len(provider.requested) != 1 || provider.requested[0] != rootModule {
		t.Fatalf("expected default module %s, got %v", rootModule, provider.requested)
	}
	if rec.fields[0]["module"] != rootModule {
		t.Fatalf("expected module field %s, got %v", rootModule, rec.fields[0]["module"])
	}
}

func TestNamedLoggersRequestTheirModules(t *testing.T) {
	cases := []struct {
		name   string
		build  func(interfaces.LoggerProvider) interfaces.Logger
		module string
	}{
		{name: "session", build: SessionLogger, module: sessionModule},
		{name: "catalog", build: CatalogLogger, module: catalogModule},
		{name: "layouts", build: LayoutsLogger, module: layoutsModule},
		{name: "styles", build: StylesLogger, module: stylesModule},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			provider := &stubProvider{logger: &recordingLogger{}}
			_ = tc.build(provider)
			if len(provider.requested) == 0 || provider.requested[0] != tc.module {
				t.Fatalf("expected %s module request, got %v", tc.module, provider.requested)
			}
		})
	}
}

func TestWithSessionContextSkipsEmptyValues(t *testing.T) {
	rec := &recordingLogger{}

	_ = WithSessionContext(rec, " home ", "", "reorder")

	if len(rec.fields) != 1 {
		t.Fatalf("expected one fields call, got %d", len(rec.fields))
	}
	fields := rec.fields[0]
	if fields[fieldPageKey] != "home" {
		t.Fatalf("expected trimmed page key, got %v", fields[fieldPageKey])
	}
	if _, ok := fields[fieldSectionID]; ok {
		t.Fatalf("expected empty section id to be skipped, got %v", fields)
	}
	if fields[fieldOperation] != "reorder" {
		t.Fatalf("expected operation field, got %v", fields[fieldOperation])
	}
}
