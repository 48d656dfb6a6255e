/*
Copyright (c) 2013-2018 The btcsuite developers
Use of this source code is governed by an ISC
license that can be found in the LICENSE file.

Anchord tracks the checkpoint anchors a quorum commits into a notary chain,
selects the active one, and validates coinbase transactions against the
foundation reward rules.

Usage:

	anchord [OPTIONS]

For an up-to-date help message:

	anchord --help

The long form of all option flags (except -C) can be specified in a configuration
file that is automatically parsed when anchord starts up. By default, the
configuration file is located at ~/.anchord/anchord.conf on POSIX-style operating
systems and %LOCALAPPDATA%\anchord\anchord.conf on Windows. The -C (--configfile)
flag can be used to override this location.

Replaying an events file applies notary chain heights, anchors, anchor
deletions and coinbases in order, logs every active anchor change and exits:

	anchord --regtest --events events.json
*/
package main
