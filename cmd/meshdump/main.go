// Command meshdump meshes one synthetic chunk and writes it as a Wavefront OBJ file.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"voxelmesh/internal/config"
	"voxelmesh/internal/export"
	"voxelmesh/internal/meshing"
	"voxelmesh/internal/profiling"
	"voxelmesh/internal/voxel"
	"voxelmesh/internal/voxeltest"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/xlab/closer"
)

var (
	configPath = flag.String("config", "", "YAML config file (default $VOXELMESH_CONFIG)")
	dimsFlag   = flag.String("dims", "", "chunk size as XxYxZ, e.g. 16x64x16")
	seedFlag   = flag.Int64("seed", 0, "fixture seed")
	shapeFlag  = flag.String("shape", "", "heightmap, random or cube")
	mesherFlag = flag.String("mesher", "", "greedy or culled")
	outPath    = flag.String("out", "", "OBJ output path, - for stdout")
)

func main() {
	defer closer.Close()
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		closer.Fatalln(err)
	}
	if err := applyFlags(cfg); err != nil {
		closer.Fatalln(err)
	}
	log, err := cfg.Log.Logger()
	if err != nil {
		closer.Fatalln(err)
	}
	if err := run(cfg, log); err != nil {
		log.WithError(err).Error("meshdump failed")
		closer.Fatalln(err)
	}
}

// applyFlags overrides config values with the flags given on the command line.
func applyFlags(cfg *config.Config) error {
	var err error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dims":
			var d voxel.Dims
			if _, scanErr := fmt.Sscanf(*dimsFlag, "%dx%dx%d", &d.X, &d.Y, &d.Z); scanErr != nil {
				err = fmt.Errorf("bad -dims %q: %w", *dimsFlag, scanErr)
				return
			}
			cfg.Source.Dims = d
		case "seed":
			cfg.Source.Seed = *seedFlag
		case "shape":
			cfg.Source.Shape = *shapeFlag
		case "mesher":
			cfg.Mesher.Kind = *mesherFlag
		}
	})
	if err != nil {
		return err
	}
	return cfg.Validate()
}

func buildSource(src config.SourceConfig) *voxel.Grid {
	switch src.Shape {
	case "random":
		return voxeltest.Random(src.Dims, src.Seed, src.Density)
	case "cube":
		d := src.Dims
		lo := [3]int{d.X / 4, d.Y / 4, d.Z / 4}
		hi := [3]int{d.X - lo[0], d.Y - lo[1], d.Z - lo[2]}
		return voxeltest.Cube(d, lo, hi, voxel.Stone)
	default:
		return voxeltest.Heightmap(src.Dims, src.Seed)
	}
}

func run(cfg *config.Config, log *logrus.Logger) error {
	palette, err := cfg.BuildPalette()
	if err != nil {
		return err
	}
	for _, def := range palette.Definitions() {
		lo, hi := cfg.Atlas.Region(def.Side)
		log.WithFields(logrus.Fields{
			"id":     uint8(def.ID),
			"name":   def.Name,
			"top":    def.Top,
			"side":   def.Side,
			"bottom": def.Bottom,
		}).Debugf("block side tile spans %v..%v", lo, hi)
	}

	reg := prometheus.NewRegistry()
	if err := profiling.Register(reg); err != nil {
		return err
	}
	pool := meshing.NewWorkerPool(cfg.Pool.Workers, cfg.Pool.QueueSize, cfg.NewMesher(palette), log, meshing.NewMetrics(reg))
	closer.Bind(pool.Shutdown)

	grid := buildSource(cfg.Source)
	log.WithFields(logrus.Fields{
		"shape":  cfg.Source.Shape,
		"dims":   cfg.Source.Dims,
		"seed":   cfg.Source.Seed,
		"solid":  grid.SolidCount(),
		"mesher": cfg.Mesher.Kind,
	}).Info("chunk generated")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	res, err := pool.BuildSync(ctx, cube.Pos{}, grid)
	if err != nil {
		return err
	}

	mesh := res.Mesh
	box := mesh.Bounds()
	log.WithFields(logrus.Fields{
		"quads":    mesh.QuadCount(),
		"vertices": len(mesh.Vertices),
		"indices":  len(mesh.Indices),
		"min":      box.Min(),
		"max":      box.Max(),
		"hash":     fmt.Sprintf("%016x", res.Hash),
		"elapsed":  res.Elapsed,
	}).Info("chunk meshed")
	log.Infof("top stages: %s", profiling.TopN(5))

	if *outPath == "" {
		return nil
	}
	var w io.Writer = os.Stdout
	if *outPath != "-" {
		f, err := os.Create(*outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := export.WriteOBJ(w, mesh, "chunk"); err != nil {
		return fmt.Errorf("write %s: %w", *outPath, err)
	}
	log.WithField("path", *outPath).Info("mesh written")
	return nil
}
