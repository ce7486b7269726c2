package commands

import (
	"fmt"
	"io"
	"strings"

	"9fans.net/go/plan9"
	"9fans.net/go/plan9/client"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/elizafairlady/go-wheel/entry"
	"github.com/elizafairlady/go-wheel/proto"
)

func ctlCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "ctl [kind] [key=value]...",
		Short: "Send one action to a running wheel",
		Long: `Send one action to the ctl file of a running 'wheel serve'.

  wheel ctl add "label=Anne Marie"
  wheel ctl spin
  wheel ctl toggle id=0c6f...`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := &proto.Action{Kind: args[0], KVs: map[string]string{}}
			for _, kv := range args[1:] {
				k, v, ok := strings.Cut(kv, "=")
				if !ok || k == "" {
					return fmt.Errorf("bad argument %q: want key=value", kv)
				}
				a.KVs[k] = v
			}
			return withRemote(addr, func(fs *client.Fsys) error {
				return writeFile(fs, "ctl", proto.SerializeAction(a)+"\n")
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "server address (default from config)")
	return cmd
}

// remoteEntries reads the entry list served at addr.
func remoteEntries(addr string) (entry.List, error) {
	var l entry.List
	err := withRemote(addr, func(fs *client.Fsys) error {
		data, err := readFile(fs, "entries")
		if err != nil {
			return err
		}
		l, err = proto.ParseEntries(string(data))
		return err
	})
	return l, err
}

func withRemote(addr string, fn func(*client.Fsys) error) (err error) {
	if addr == "" {
		addr = cfg.Listen
	}
	conn, err := client.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer func() { err = multierr.Append(err, conn.Close()) }()

	fs, err := conn.Attach(nil, "wheel", "")
	if err != nil {
		return fmt.Errorf("attach %s: %w", addr, err)
	}
	return fn(fs)
}

func readFile(fs *client.Fsys, name string) (data []byte, err error) {
	fid, err := fs.Open(name, plan9.OREAD)
	if err != nil {
		return nil, err
	}
	defer func() { err = multierr.Append(err, fid.Close()) }()
	return io.ReadAll(fid)
}

func writeFile(fs *client.Fsys, name, data string) (err error) {
	fid, err := fs.Open(name, plan9.OWRITE)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, fid.Close()) }()
	_, err = fid.Write([]byte(data))
	return err
}
