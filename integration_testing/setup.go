//go:build integration_test_docker

package integration_testing

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"github.com/avelic/bookstand/internal"
	"github.com/avelic/bookstand/internal/config"
)

const (
	serverPort = 9000
	serverHost = "localhost"

	// testpass
	testAdminEmail        = "admin@bookstand.store"
	testAdminPasswordHash = "$2a$14$6Gmhg85si2etd3K9oB8nYu1cxfbrdmhkg6wI6OXsa88IF4L2r/L9i"
)

var serverEndpoint = fmt.Sprintf("http://%s:%d", serverHost, serverPort)

type Suite struct {
	DB         *sql.DB
	dockerPool *dockertest.Pool
	server     *internal.Server
	teardown   []func()
}

func newSuite(ctx context.Context) *Suite {
	var err error
	suite := &Suite{
		teardown: make([]func(), 0),
	}

	// uses a sensible default on windows (tcp/http) and linux/osx (socket)
	suite.dockerPool, err = dockertest.NewPool("")
	if err != nil {
		log.Fatalf("could not create new dockertest pool: %s", err)
	}

	// uses pool to try to connect to Docker
	if err = suite.dockerPool.Client.Ping(); err != nil {
		log.Fatalf("could not ping dockertest pool: %s", err)
	}

	redisPort, err := suite.redisSetup()
	if err != nil {
		suite.cleanup()
		log.Fatalf("failed to setup redis: %s", err)
	}

	pgPort, err := suite.postgresSetup()
	if err != nil {
		suite.cleanup()
		log.Fatalf("failed to setup postgres: %s", err)
	}

	cfg := getTestConfig(redisPort, pgPort)
	suite.server, err = internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  cfg,
			VersionInfo:             "test-version-info",
			AdminEmail:              testAdminEmail,
			AdminPasswordHash:       testAdminPasswordHash,
			RedisPassword:           "",
			HoneycombTracingEnabled: false,
		},
	)
	if err != nil {
		suite.cleanup()
		log.Fatalf("new server: %s", err)
	}

	suite.server.Serve(ctx, cfg.Host, cfg.Port)
	time.Sleep(time.Second)

	return suite
}

func (s *Suite) cleanup() {
	if s.DB != nil {
		s.DB.Close()
	}
	for _, teardown := range s.teardown {
		teardown()
	}
	if s.server != nil {
		s.server.GracefulShutdown()
	}
}

func getTestConfig(redisPort, postgresPort string) *config.Config {
	return &config.Config{
		Host:                          serverHost,
		Port:                          serverPort,
		RedisHost:                     "localhost",
		RedisPort:                     redisPort,
		PostgresHost:                  "localhost",
		PostgresPort:                  postgresPort,
		PostgresDBName:                "bookstand",
		PrometheusMetricsHost:         "localhost",
		PrometheusMetricsPort:         "9001",
		LoginRateLimitAllowedPerMin:   100,
		ContactRateLimitAllowedPerMin: 100,
	}
}

func (s *Suite) redisSetup() (string, error) {
	redisResource, err := s.dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Name:       "redis",
		Tag:        "6.2",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
	})
	if err != nil {
		return "", fmt.Errorf("run redis: %s", err)
	}

	s.teardown = append(s.teardown, func() {
		redisResource.Close()
	})

	redisPort := redisResource.GetPort("6379/tcp")
	return redisPort, nil
}

func (s *Suite) postgresSetup() (string, error) {
	pgResource, err := s.dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "12",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_HOST_AUTH_METHOD=trust",
			"POSTGRES_DB=bookstand",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	if err != nil {
		return "", fmt.Errorf("dockerpool run postgres: %s", err)
	}

	s.teardown = append(s.teardown, func() {
		pgResource.Close()
	})

	pgPort := pgResource.GetPort("5432/tcp")
	dsn := fmt.Sprintf("postgres://postgres@localhost:%s/bookstand?sslmode=disable", pgPort)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return "", fmt.Errorf("open db conn: %s", err)
	}
	s.DB = db

	if _, err := db.Exec(initSQL); err != nil {
		return "", fmt.Errorf("run init script: %s", err)
	}

	if err := db.Ping(); err != nil {
		return "", fmt.Errorf("ping db: %s", err)
	}

	return pgPort, nil
}

const initSQL = `
CREATE TABLE public.books
(
    id              SERIAL PRIMARY KEY,
    title           VARCHAR NOT NULL,
    author          VARCHAR NOT NULL,
    description     TEXT    NOT NULL DEFAULT '',
    price           NUMERIC NOT NULL DEFAULT 0,
    is_free         BOOLEAN NOT NULL DEFAULT FALSE,
    category        VARCHAR NOT NULL,
    cover_image_url VARCHAR NOT NULL DEFAULT '',
    book_url        VARCHAR NOT NULL DEFAULT '',
    created_at      TIMESTAMP WITHOUT TIME ZONE NOT NULL,
    UNIQUE (title, author)
);

ALTER TABLE public.books OWNER TO postgres;
CREATE INDEX ix_books_created_at ON public.books USING btree (created_at);
CREATE INDEX ix_books_category ON public.books (category);

CREATE TABLE public.blog_posts
(
    id                 SERIAL PRIMARY KEY,
    title              VARCHAR NOT NULL,
    content            TEXT    NOT NULL,
    excerpt            TEXT    NOT NULL DEFAULT '',
    published          BOOLEAN NOT NULL DEFAULT FALSE,
    featured_image_url VARCHAR NOT NULL DEFAULT '',
    tags               VARCHAR[] NOT NULL DEFAULT '{}',
    created_at         TIMESTAMP WITHOUT TIME ZONE NOT NULL,
    updated_at         TIMESTAMP WITHOUT TIME ZONE NOT NULL
);

ALTER TABLE public.blog_posts OWNER TO postgres;
CREATE INDEX ix_blog_posts_created_at ON public.blog_posts USING btree (created_at);

CREATE TABLE public.book_requests
(
    id         SERIAL PRIMARY KEY,
    name       VARCHAR NOT NULL,
    email      VARCHAR NOT NULL,
    message    TEXT    NOT NULL,
    book_title VARCHAR NOT NULL DEFAULT '',
    status     VARCHAR NOT NULL DEFAULT 'pending',
    created_at TIMESTAMP WITHOUT TIME ZONE NOT NULL
);

ALTER TABLE public.book_requests OWNER TO postgres;
CREATE INDEX ix_book_requests_created_at ON public.book_requests USING btree (created_at);

CREATE TABLE public.site_settings
(
    key   VARCHAR PRIMARY KEY,
    value VARCHAR NOT NULL
);

ALTER TABLE public.site_settings OWNER TO postgres;

CREATE TABLE public.admin_users
(
    id VARCHAR PRIMARY KEY
);

ALTER TABLE public.admin_users OWNER TO postgres;
`
