package service

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Liunian06/LNChat-sub000/app/core"
	v1 "github.com/Liunian06/LNChat-sub000/app/logic/v1"
	"github.com/Liunian06/LNChat-sub000/pkg/utils"
)

type Options struct {
	ConfigPath string
}

func (o *Options) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVarP(&o.ConfigPath, "config", "c", "", "init api by given config")
}

func NewCommand() *cobra.Command {
	opts := &Options{}
	cmd := &cobra.Command{
		Use:   "service",
		Short: "chat service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(opts)
		},
	}
	opts.AddFlags(cmd.Flags())
	return cmd
}

func Run(opts *Options) error {
	utils.SetupIDWorker(1)

	app := core.MustSetupCore(core.MustLoadBaseConfig(opts.ConfigPath))

	scheduler := v1.SetupScheduler(app)
	defer scheduler.Stop()

	serve(app)
	return nil
}
