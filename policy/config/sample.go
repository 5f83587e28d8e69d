// Copyright 2026 The DAQ Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

const policySample = `
# The base FAUCET network configuration. (default "misc/faucet.yaml")
network_config = "misc/faucet.yaml"

# The directory generated files are written to. (default "inst")
inst_dir = "inst"

# The directory containing the ACL templates. (default "<inst_dir>/acl_templates")
template_dir = "inst/acl_templates"

# The device spec table. The file is optional; without it no port ACLs are
# generated. (default "<inst_dir>/device_specs.json")
device_specs = "inst/device_specs.json"

# The name of the switch facing the test infrastructure. (default "pri")
primary_dp = "pri"

# The name of the switch the devices are plugged into. (default "sec")
secondary_dp = "sec"

# The number of device ports on the secondary switch. (default 6)
access_ports = 6

# The VLAN device traffic is carried in between the switches. (default 10)
device_vlan = 10

# The port of the primary switch facing the secondary switch. (default 1)
uplink_port = 1

# The number of parsed ACL templates kept in memory. A negative value
# disables caching. (default 32)
template_cache_size = 32
`

const controllerSample = `
# Start the controller once the initial configuration is written and stop it
# on shutdown. (default false)
managed = false

# The command starting the controller. Its output must end with the success
# marker. (default "cmd/faucet && echo SUCCESS")
start_cmd = "cmd/faucet && echo SUCCESS"

# The command stopping the controller. (default "docker kill daq-faucet")
stop_cmd = "docker kill daq-faucet"

# The marker the output of the start command must end with. (default "SUCCESS")
success_marker = "SUCCESS"

# The time each start or stop command may run before it is aborted.
# (default "1m")
timeout = "1m"
`
