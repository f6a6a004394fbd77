package llm

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

type fakeProvider struct {
	config  map[string]string
	initErr error
}

func (f *fakeProvider) Initialize(config map[string]string) error {
	f.config = config
	return f.initErr
}

func (f *fakeProvider) GetName() string { return "fake" }

func (f *fakeProvider) GetSupportedModels() []string { return []string{"fake-1"} }

func (f *fakeProvider) CompleteText(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	return &CompletionResponse{Text: req.Prompt}, nil
}

func TestRegistryGetProvider(t *testing.T) {
	r := NewRegistry()
	r.Register("fake", func() Provider { return &fakeProvider{} })

	provider, err := r.GetProvider("fake", map[string]string{"api_key": "k"})
	if err != nil {
		t.Fatalf("获取提供者失败: %v", err)
	}

	fp, ok := provider.(*fakeProvider)
	if !ok {
		t.Fatalf("提供者类型错误: %T", provider)
	}
	if fp.config["api_key"] != "k" {
		t.Errorf("Initialize 应收到配置，实际: %v", fp.config)
	}
}

func TestRegistryUnknownProvider(t *testing.T) {
	r := NewRegistry()

	_, err := r.GetProvider("missing", nil)
	if !errors.Is(err, ErrUnknownProvider) {
		t.Fatalf("未注册的提供者应返回 ErrUnknownProvider，实际: %v", err)
	}
}

func TestRegistryInitializeFailure(t *testing.T) {
	r := NewRegistry()
	initErr := errors.New("bad base url")
	r.Register("broken", func() Provider { return &fakeProvider{initErr: initErr} })

	provider, err := r.GetProvider("broken", nil)
	if !errors.Is(err, initErr) {
		t.Fatalf("应返回初始化错误，实际: %v", err)
	}
	if provider != nil {
		t.Errorf("初始化失败时不应返回提供者")
	}
}

func TestRegistryListProvidersSorted(t *testing.T) {
	r := NewRegistry()
	r.Register("openai", func() Provider { return &fakeProvider{} })
	r.Register("google", func() Provider { return &fakeProvider{} })

	if got := r.ListProviders(); !reflect.DeepEqual(got, []string{"google", "openai"}) {
		t.Fatalf("提供者列表应排序，实际: %v", got)
	}
}
