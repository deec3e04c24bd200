package serve

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	cmdUtil "github.com/klind25/teller/cmd/util"
	"github.com/klind25/teller/rpc/common"
	"github.com/klind25/teller/rpc/serializer"
	"github.com/klind25/teller/rpc/server"
	"github.com/klind25/teller/rpc/transport"
	"github.com/klind25/teller/rpc/transport/http"
	"github.com/klind25/teller/rpc/transport/tcp"
	"github.com/klind25/teller/rpc/transport/unix"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	serveCmdConfig = &common.ServerConfig{}
	ServeCmd       = &cobra.Command{
		Use:     "serve",
		Short:   "Start the teller server",
		Long:    `Start the teller server with the specified configuration. The configuration can be set via command line flags or environment variables. The format of the environment variables is TELLER_<flag> (e.g. TELLER_ENDPOINT=localhost:5000)`,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(initConfig)

	// add flags
	key := "endpoint"
	ServeCmd.PersistentFlags().String(key, "0.0.0.0:5000", cmdUtil.WrapString("The address the server will listen on (host:port for tcp and http, a filesystem path for unix sockets)"))

	key = "timeout"
	ServeCmd.PersistentFlags().Int64(key, 5, cmdUtil.WrapString("Read/write timeout in seconds applied to every socket operation (0 disables timeouts)"))

	key = "max-payload"
	ServeCmd.PersistentFlags().Uint64(key, 0, cmdUtil.WrapString("The maximum size of a single message payload in bytes (0 for the transport default of 8 MiB)"))

	key = "data-dir"
	ServeCmd.PersistentFlags().String(key, "data", cmdUtil.WrapString("The directory uploaded files are stored under"))

	key = "metrics-endpoint"
	ServeCmd.PersistentFlags().String(key, "", cmdUtil.WrapString("The address to serve Prometheus metrics on (e.g. localhost:9100, empty disables the endpoint)"))

	key = "log-level"
	ServeCmd.PersistentFlags().String(key, "info", cmdUtil.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))

	key = "tcp-nodelay"
	ServeCmd.PersistentFlags().Bool(key, true, cmdUtil.WrapString("Whether to enable TCP_NODELAY for accepted connections (tcp only)"))

	key = "tcp-keepalive"
	ServeCmd.PersistentFlags().Int(key, 0, cmdUtil.WrapString("The keepalive interval for accepted connections (in seconds, tcp only)"))

	key = "tcp-linger"
	ServeCmd.PersistentFlags().Int(key, -1, cmdUtil.WrapString("The linger time for accepted connections (in seconds, negative for the OS default, tcp only)"))

	key = "write-buffer"
	ServeCmd.PersistentFlags().Int(key, 0, cmdUtil.WrapString("The size of the write buffer for accepted connections (in KB, 0 for the OS default, ignored for http)"))

	key = "read-buffer"
	ServeCmd.PersistentFlags().Int(key, 0, cmdUtil.WrapString("The size of the read buffer for accepted connections (in KB, 0 for the OS default, ignored for http)"))
}

// processConfig reads the configuration from the command line flags and environment variables and converts them to the server configuration
func processConfig(cmd *cobra.Command, _ []string) error {
	// bind the flags to viper
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// read the configuration from the command line flags and environment variables
	serveCmdConfig.Endpoint = viper.GetString("endpoint")
	serveCmdConfig.TimeoutSecond = viper.GetInt64("timeout")
	serveCmdConfig.MaxPayloadBytes = viper.GetUint64("max-payload")
	serveCmdConfig.DataDir = viper.GetString("data-dir")
	serveCmdConfig.MetricsEndpoint = viper.GetString("metrics-endpoint")
	serveCmdConfig.LogLevel = viper.GetString("log-level")
	serveCmdConfig.Transport = common.TransportConfig{
		TCPNoDelay:      viper.GetBool("tcp-nodelay"),
		TCPKeepAliveSec: viper.GetInt("tcp-keepalive"),
		TCPLingerSec:    viper.GetInt("tcp-linger"),
		WriteBufferSize: viper.GetInt("write-buffer") * 1024,
		ReadBufferSize:  viper.GetInt("read-buffer") * 1024,
	}

	return nil
}

// run starts the teller server
func run(_ *cobra.Command, _ []string) error {

	// parse the serializer
	var s serializer.IRPCSerializer
	switch viper.GetString("serializer") {
	case "text":
		s = serializer.NewTextSerializer()
	case "json":
		s = serializer.NewJSONSerializer()
	case "gob":
		s = serializer.NewGOBSerializer()
	default:
		return fmt.Errorf("invalid serializer %s", viper.GetString("serializer"))
	}

	// parse the transport (the serializer becomes part of the transport)
	var t transport.IRPCServerTransport
	switch viper.GetString("transport") {
	case "tcp":
		t = tcp.NewTCPServerTransport(s)
	case "unix":
		t = unix.NewUnixServerTransport(s)
	case "http":
		t = http.NewHttpServerTransport(s)
	default:
		return fmt.Errorf("invalid transport %s", viper.GetString("transport"))
	}

	serv := server.NewRPCServer(
		*serveCmdConfig,
		t,
	)

	return serv.Serve()
}

// initConfig loads env files and initializes viper
func initConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("teller")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}
