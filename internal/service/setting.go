package service

import (
	"context"
	"regexp"
	"sort"

	"sitecms/internal/model"
	"sitecms/internal/repository"
	"sitecms/internal/revalidate"
)

var settingKeyPattern = regexp.MustCompile(`^[a-z0-9_.]{1,100}$`)

// SettingService exposes site-wide key/value settings.
type SettingService interface {
	// ListPublic returns public settings as a key/value map for the site.
	ListPublic(ctx context.Context) (map[string]string, error)

	// ListAll returns every setting for the backoffice.
	ListAll(ctx context.Context) ([]model.Setting, error)

	Get(ctx context.Context, key string) (*model.Setting, error)

	// Upsert creates or overwrites the given keys. Keys not present are left alone.
	Upsert(ctx context.Context, in map[string]SettingInput) ([]model.Setting, error)
}

type settingService struct {
	repo  repository.SettingRepository
	hooks changeHooks
}

// NewSettingService constructs a new SettingService.
func NewSettingService(repo repository.SettingRepository, deps Deps) SettingService {
	return &settingService{repo: repo, hooks: deps.hooks("setting")}
}

func (s *settingService) ListPublic(ctx context.Context) (map[string]string, error) {
	settings, err := s.repo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(settings))
	for _, st := range settings {
		out[st.Key] = st.Value
	}
	return out, nil
}

func (s *settingService) ListAll(ctx context.Context) ([]model.Setting, error) {
	return s.repo.List(ctx, false)
}

func (s *settingService) Get(ctx context.Context, key string) (*model.Setting, error) {
	st, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return st, nil
}

func (s *settingService) Upsert(ctx context.Context, in map[string]SettingInput) ([]model.Setting, error) {
	if len(in) == 0 {
		return nil, invalidField("settings", "required")
	}
	keys := make([]string, 0, len(in))
	fields := map[string]string{}
	for k, v := range in {
		if !settingKeyPattern.MatchString(k) {
			fields[k] = "key"
			continue
		}
		if err := Validate(v); err != nil {
			fields[k] = "value"
			continue
		}
		keys = append(keys, k)
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}
	sort.Strings(keys)

	settings := make([]model.Setting, 0, len(keys))
	for _, k := range keys {
		settings = append(settings, model.Setting{Key: k, Value: in[k].Value, IsPublic: in[k].IsPublic})
	}
	if err := s.repo.Upsert(ctx, settings); err != nil {
		return nil, mapRepoErr(err)
	}
	s.hooks.changed(ctx, model.AuditUpdate, "setting", "", map[string]any{"keys": keys}, revalidate.TagSettings)
	return s.repo.List(ctx, false)
}
