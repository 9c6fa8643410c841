package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bi0dread/jqlb"
)

type documentOptions struct {
	in   string
	from string
}

func (o *documentOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.in, "in", "-", "query document file, - for stdin")
	cmd.Flags().StringVar(&o.from, "from", "json", "input format: json or msgpack")
}

func (o *documentOptions) read(cfg *jqlb.Config) (jqlb.Query, error) {
	var (
		data []byte
		err  error
	)
	if o.in == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(o.in)
	}
	if err != nil {
		return jqlb.Query{}, errors.Wrapf(err, "read %s", o.in)
	}

	switch o.from {
	case "json":
		return jqlb.DecodeQueryJSON(data, cfg)
	case "msgpack":
		return jqlb.DecodeQueryMsgpack(data, cfg)
	default:
		return jqlb.Query{}, errors.Errorf("unknown input format %q", o.from)
	}
}

type adapterFlags struct {
	naming string
	take   int
	skip   int
}

func (a *adapterFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&a.naming, "naming", string(jqlb.NamingStrategySnakeCase), "column naming: snake_case or no_change")
	cmd.Flags().IntVar(&a.take, "take", 0, "page size, 0 for no limit")
	cmd.Flags().IntVar(&a.skip, "skip", 0, "rows to skip")
}

func (a *adapterFlags) options() (*jqlb.AdapterOptions, error) {
	naming, err := jqlb.ParseNamingStrategy(a.naming)
	if err != nil {
		return nil, err
	}
	return &jqlb.AdapterOptions{
		NamingStrategy: naming,
		Page:           jqlb.Page{Skip: a.skip, Take: a.take},
		Logger:         cliLogger,
	}, nil
}

func newConvertCmd() *cobra.Command {
	var (
		doc     documentOptions
		adapter adapterFlags
		to      string
		table   string
	)
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a query document to JQL, SQL, MongoDB, Elasticsearch, JSON or MessagePack",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := doc.read(&jqlb.Config{Logger: cliLogger})
			if err != nil {
				return err
			}
			opts, err := adapter.options()
			if err != nil {
				return err
			}
			out, err := convert(q, to, table, opts)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	doc.bind(cmd)
	adapter.bind(cmd)
	cmd.Flags().StringVar(&to, "to", "jql", "output format: jql, sql, gorm, mongo, es, json or msgpack")
	cmd.Flags().StringVar(&table, "table", "issues", "table name for sql and gorm output")
	return cmd
}

func convert(q jqlb.Query, to, table string, opts *jqlb.AdapterOptions) ([]byte, error) {
	switch to {
	case "jql":
		return []byte(jqlb.RenderJQL(q) + "\n"), nil
	case "sql":
		sql, args, err := jqlb.BuildRawSelect(q, table, opts)
		if err != nil {
			return nil, err
		}
		return []byte(jqlb.SQLString(sql, args) + "\n"), nil
	case "gorm":
		db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
			DryRun: true,
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return nil, err
		}
		sql, err := jqlb.GormSQLString(db, table, q, opts)
		if err != nil {
			return nil, err
		}
		return []byte(sql + "\n"), nil
	case "mongo":
		filter, err := jqlb.BuildMongoFilter(q.Where, opts)
		if err != nil {
			return nil, err
		}
		pipeline, err := jqlb.BuildMongoAggregatePipeline(q, opts)
		if err != nil {
			return nil, err
		}
		out, err := bson.MarshalExtJSONIndent(bson.M{"filter": filter, "pipeline": pipeline}, false, false, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	case "es":
		esq, err := jqlb.BuildElasticsearchQuery(q, opts)
		if err != nil {
			return nil, err
		}
		s, err := esq.JSON(true)
		if err != nil {
			return nil, err
		}
		return []byte(s + "\n"), nil
	case "json":
		return jqlb.MarshalQueryJSON(q)
	case "msgpack":
		return jqlb.MarshalQueryMsgpack(q)
	default:
		return nil, errors.Errorf("unknown output format %q", to)
	}
}
