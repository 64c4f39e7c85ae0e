package cli

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/dotstitch/pkg/errors"
	"github.com/matzehuels/dotstitch/pkg/pipeline"
)

// defaultConfigFile is looked up in the working directory when --config
// is not given.
const defaultConfigFile = "dotstitch.toml"

// fileConfig is the schema of the optional TOML config file. Its values
// provide defaults for the merge, transform, and render options;
// explicit command-line flags always win.
//
// Example dotstitch.toml:
//
//	[merge]
//	name = "root"
//	cluster = true
//
//	[merge.graph_attrs]
//	compound = "true"
//	splines = "ortho"
//
//	[transform]
//	exclude = ['-> "provider\.']
//
//	[render]
//	format = "pdf"
type fileConfig struct {
	Merge struct {
		Name       string            `toml:"name"`
		Strict     bool              `toml:"strict"`
		Undirected bool              `toml:"undirected"`
		Cluster    bool              `toml:"cluster"`
		GraphAttrs map[string]string `toml:"graph_attrs"`
		NodeAttrs  map[string]string `toml:"node_attrs"`
		EdgeAttrs  map[string]string `toml:"edge_attrs"`
	} `toml:"merge"`

	Transform struct {
		Exclude     []string `toml:"exclude"`
		Rewrite     []string `toml:"rewrite"`
		SplitLabels bool     `toml:"split_labels"`
		Unwrap      bool     `toml:"unwrap"`
	} `toml:"transform"`

	Render struct {
		Format   string `toml:"format"`
		Engine   string `toml:"engine"`
		Renderer string `toml:"renderer"`
	} `toml:"render"`
}

// loadConfig reads and decodes the config file. An explicitly given
// path must exist and decode; the default file is optional and its
// absence is not an error.
func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig

	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config %s", path)
	}
	return cfg, nil
}

// pipelineOptions maps the config onto pipeline options. This is the
// baseline the flag structs override field by field.
func (c fileConfig) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		Name:       c.Merge.Name,
		Strict:     c.Merge.Strict,
		Undirected: c.Merge.Undirected,
		Cluster:    c.Merge.Cluster,
		GraphAttrs: c.Merge.GraphAttrs,
		NodeAttrs:  c.Merge.NodeAttrs,
		EdgeAttrs:  c.Merge.EdgeAttrs,

		Exclude:     c.Transform.Exclude,
		Rewrite:     c.Transform.Rewrite,
		SplitLabels: c.Transform.SplitLabels,
		Unwrap:      c.Transform.Unwrap,

		Format:   c.Render.Format,
		Engine:   c.Render.Engine,
		Renderer: c.Render.Renderer,
	}
}
