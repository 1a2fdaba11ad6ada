/*
Package peering implements Peering contract which records storage commitments
of peers and pays storage rewards for them.

A peer commits to store data identified by its hash for a number of months.
The commitment is then either verified or rejected exactly once. A verified
commitment can be paid out once to the recipient chosen by the committed
peer after the commitment duration has passed since verification. The reward
is computed from the proved data size, the duration and the megabyte-month
rate of Token contract, and it is paid from the reserve Token contract
allocated to Peering contract on link.

# Contract notifications

Register notification. It is produced when a peer registers its host.

	Register:
	  - name: peer
	    type: Hash160
	  - name: host
	    type: ByteArray

Commit notification. It is produced when a new commitment is registered.

	Commit:
	  - name: peer
	    type: Hash160
	  - name: dataHash
	    type: ByteArray
	  - name: size
	    type: Integer
	  - name: duration
	    type: Integer

Verify notification. It is produced when a commitment is verified.

	Verify:
	  - name: verifier
	    type: Hash160
	  - name: dataHash
	    type: ByteArray
	  - name: provedSize
	    type: Integer

Reject notification. It is produced when a commitment is rejected.

	Reject:
	  - name: rejecter
	    type: Hash160
	  - name: dataHash
	    type: ByteArray

Payout notification. It is produced when the reward is paid.

	Payout:
	  - name: dataHash
	    type: ByteArray
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer
*/
package peering
