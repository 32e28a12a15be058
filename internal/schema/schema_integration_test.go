//go:build integration_pg
// +build integration_pg

package schema_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	perr "botdesk/internal/platform/errors"
	"botdesk/internal/platform/store"
	"botdesk/internal/platform/store/migrate"
	"botdesk/internal/schema"
	bdom "botdesk/internal/services/api/bots/domain"
	brepo "botdesk/internal/services/api/bots/repo"
	bsvc "botdesk/internal/services/api/bots/service"
	chdom "botdesk/internal/services/api/channels/domain"
	chrepo "botdesk/internal/services/api/channels/repo"
	chsvc "botdesk/internal/services/api/channels/service"
	frepo "botdesk/internal/services/api/filterapi/repo"
	fsvc "botdesk/internal/services/api/filterapi/service"
)

func startPostgres(t *testing.T) string {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	t.Cleanup(cancel)

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "postgres",
				"POSTGRES_DB":       "botdesk",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithDeadline(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	mapped, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("mapped port: %v", err)
	}
	return fmt.Sprintf("postgres://postgres:postgres@%s:%s/botdesk?sslmode=disable", host, mapped.Port())
}

func TestSchema_EndToEnd_Integration(t *testing.T) {
	dsn := startPostgres(t)
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	st, err := store.Open(ctx, store.Config{
		AppName: "botdesk-schema-integration",
		PG:      store.PGConfig{Enabled: true, URL: dsn, MaxConns: 4},
	})
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer func() { _ = st.Close(context.Background()) }()

	// applying twice is a no op
	for i := 0; i < 2; i++ {
		if err := migrate.Up(ctx, st.PG, schema.FS, schema.Dir); err != nil {
			t.Fatalf("migrate.Up #%d: %v", i+1, err)
		}
	}
	report, err := migrate.Report(ctx, st.PG, schema.FS, schema.Dir)
	if err != nil {
		t.Fatalf("migrate.Report: %v", err)
	}
	for _, s := range report {
		if !s.Applied {
			t.Fatalf("migration %s not applied", s.ID)
		}
	}

	// catalog seed
	if _, err := st.PG.Exec(ctx, `INSERT INTO connector (name, source) VALUES ('docs site', 'web'), ('old', 'slack')`); err != nil {
		t.Fatalf("seed connector: %v", err)
	}
	if _, err := st.PG.Exec(ctx, `UPDATE connector SET disabled = true WHERE name = 'old'`); err != nil {
		t.Fatalf("disable connector: %v", err)
	}
	var docID int64
	if err := st.PG.QueryRow(ctx, `INSERT INTO document_set (name) VALUES ('Engineering Docs') RETURNING id`).Scan(&docID); err != nil {
		t.Fatalf("seed document set: %v", err)
	}
	if _, err := st.PG.Exec(ctx, `INSERT INTO tag (tag_key, tag_value, source) VALUES ('priority', 'p:high', 'web')`); err != nil {
		t.Fatalf("seed tag: %v", err)
	}

	channels := chsvc.New(st.PG, chrepo.NewPG())
	bots := bsvc.New(st.PG, brepo.NewPG(), bsvc.Options{Channels: channels})
	filters := fsvc.New(st.PG, frepo.NewPG(), fsvc.Options{})

	bot, err := bots.Create(ctx, bdom.CreateInput{Name: "helpdesk", Enabled: true, Token: "token-0123456789"})
	if err != nil {
		t.Fatalf("create bot: %v", err)
	}
	if bot.TokenHint != "****6789" {
		t.Fatalf("token hint = %q", bot.TokenHint)
	}
	if _, err := bots.Create(ctx, bdom.CreateInput{Name: "copy", Token: "token-0123456789"}); !perr.IsCode(err, perr.ErrorCodeDuplicateKey) {
		t.Fatalf("duplicate token: want DuplicateKey, got %v", err)
	}

	cfg, err := channels.Create(ctx, chdom.ConfigInput{
		BotID:         bot.ID,
		ChannelName:   "#Support",
		RespondToBots: true,
		DocumentSets:  []int64{docID},
	})
	if err != nil {
		t.Fatalf("create channel config: %v", err)
	}
	if cfg.PersonaID == nil {
		t.Fatalf("expected a bot owned persona")
	}
	var personaName string
	if err := st.PG.QueryRow(ctx, `SELECT name FROM persona WHERE id = $1`, *cfg.PersonaID).Scan(&personaName); err != nil {
		t.Fatalf("persona: %v", err)
	}
	if personaName != chdom.PersonaName(cfg.ChannelConfig.ChannelName) {
		t.Fatalf("persona name = %q", personaName)
	}

	got, err := channels.Lookup(ctx, chdom.LookupQuery{BotID: bot.ID, Channel: "support"})
	if err != nil || got.ID != cfg.ID {
		t.Fatalf("lookup = %+v, %v", got, err)
	}
	byBot, err := bots.Configs(ctx, bot.ID)
	if err != nil || len(byBot) != 1 {
		t.Fatalf("configs by bot = %+v, %v", byBot, err)
	}

	opts, err := filters.Options(ctx)
	if err != nil {
		t.Fatalf("filter options: %v", err)
	}
	if len(opts.Sources) != 1 || opts.Sources[0].InternalName != "web" {
		t.Fatalf("sources = %+v", opts.Sources)
	}
	res, err := filters.Resolve(ctx, "sources=web,slack&documentSets=Engineering%20Docs&tags=p%3Ahigh")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if res.Query != "sources=web&documentSets=Engineering%20Docs&tags=p%3Ahigh" {
		t.Fatalf("canonical query = %q", res.Query)
	}

	if err := bots.Delete(ctx, bot.ID); err != nil {
		t.Fatalf("delete bot: %v", err)
	}
	var left int
	if err := st.PG.QueryRow(ctx, `SELECT count(*) FROM discord_channel_config`).Scan(&left); err != nil || left != 0 {
		t.Fatalf("configs left = %d, %v", left, err)
	}
	if err := st.PG.QueryRow(ctx, `SELECT count(*) FROM persona`).Scan(&left); err != nil || left != 0 {
		t.Fatalf("personas left = %d, %v", left, err)
	}
}
